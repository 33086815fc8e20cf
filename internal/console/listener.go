// Package console drives the capture lifecycle from keyboard input, plus
// the Windows glue needed for reliable Ctrl+C handling alongside SDL3.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/soar/JoystickCommander/internal/joystick"
)

// DefaultCheckInterval bounds how long the listener takes to notice a
// shutdown when no input arrives.
const DefaultCheckInterval = 100 * time.Millisecond

// Listener reads single-character commands and turns them into run-state
// transitions. A reader goroutine blocks on the input stream and feeds a
// channel, so the control loop itself never blocks on the terminal.
type Listener struct {
	run      *joystick.RunState
	in       io.Reader
	out      io.Writer
	interval time.Duration
}

func NewListener(run *joystick.RunState, in io.Reader, out io.Writer, interval time.Duration) *Listener {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Listener{run: run, in: in, out: out, interval: interval}
}

// Run prints the help banner and handles commands until the run state
// reaches Terminating or the context is done. A closed input stream is not
// a reason to exit: the program can still be stopped by signal or tray.
func (l *Listener) Run(ctx context.Context) {
	fmt.Fprintln(l.out, "\nConsole control enabled:")
	fmt.Fprintln(l.out, "  's' pause joystick capture")
	fmt.Fprintln(l.out, "  'q' quit")
	fmt.Fprintln(l.out, "  'r' reconnect the joystick")
	fmt.Fprintln(l.out, "Waiting for input...")

	input := make(chan byte)
	go func() {
		defer close(input)
		r := bufio.NewReader(l.in)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case input <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if l.run.State() == joystick.Terminating {
				return
			}
		case b, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			l.handle(b)
		}
	}
}

func (l *Listener) handle(b byte) {
	switch b {
	case 's':
		if l.run.Pause() {
			fmt.Fprintln(l.out, "Joystick capture paused")
		} else if l.run.State() == joystick.Stopped {
			fmt.Fprintln(l.out, "Cannot resume a stopped capture; restart the program")
		}
	case 'q':
		fmt.Fprintln(l.out, "Exiting...")
		l.run.Terminate()
	case 'r':
		if l.run.State() == joystick.Running {
			fmt.Fprintln(l.out, "Reconnect requested; replug the joystick to trigger it")
		} else {
			fmt.Fprintln(l.out, "Cannot reconnect, capture is stopped")
		}
	case '\n', '\r':
		// Ignore line endings from the terminal.
	default:
		fmt.Fprintf(l.out, "Unknown command: %c\n", b)
		fmt.Fprintln(l.out, "Available commands: s=pause, q=quit, r=reconnect")
	}
}
