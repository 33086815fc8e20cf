package command

import (
	"fmt"
	"io"
)

// Sink receives emitted commands. The production sink is a logged
// placeholder; a real transport would slot in behind this interface.
type Sink interface {
	Send(cmd Command) error
}

// LogSink prints each command on its own line, breaking out of the
// in-place status line first.
type LogSink struct {
	W io.Writer
}

func (s LogSink) Send(cmd Command) error {
	_, err := fmt.Fprintf(s.W, "\nSending command: %d (button %s)\n", cmd.ID, cmd.Label)
	return err
}
