//go:build windows

package console

import (
	"log"
	"sync/atomic"
	"syscall"
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

type ctrlHandler struct {
	closed   int32 // atomic: shutdown closed exactly once
	shutdown chan struct{}
	callback uintptr
}

// Kept global so the Windows callback outlives the registering frame.
var handler *ctrlHandler

// SetupCtrlHandler registers a console control handler that closes shutdown
// on Ctrl+C or Ctrl+Break. Go's os.Interrupt delivery is unreliable once
// SDL3 runs on a locked OS thread and installs its own handler; the
// returned function re-registers ours and should be called after SDL init.
func SetupCtrlHandler(shutdown chan struct{}) func() {
	handler = &ctrlHandler{shutdown: shutdown}
	handler.callback = syscall.NewCallback(func(ctrlType uint32) uintptr {
		if ctrlType == ctrlCEvent || ctrlType == ctrlBreakEvent {
			if atomic.CompareAndSwapInt32(&handler.closed, 0, 1) {
				close(handler.shutdown)
			}
			return 1
		}
		return 0
	})

	register := func() {
		ret, _, _ := procSetConsoleCtrlHandler.Call(handler.callback, 1)
		if ret == 0 {
			log.Printf("Warning: failed to set console control handler")
		}
	}
	register()
	return register
}
