//go:build !windows

package console

// SetupCtrlHandler is a no-op outside Windows, where os/signal delivers
// SIGINT reliably regardless of SDL.
func SetupCtrlHandler(shutdown chan struct{}) func() {
	return func() {}
}
