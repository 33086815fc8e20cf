package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/soar/JoystickCommander/internal/command"
	"github.com/soar/JoystickCommander/internal/config"
	"github.com/soar/JoystickCommander/internal/console"
	"github.com/soar/JoystickCommander/internal/hub"
	"github.com/soar/JoystickCommander/internal/joystick"
	"github.com/soar/JoystickCommander/internal/server"
	"github.com/soar/JoystickCommander/internal/tray"
)

// Cross-platform signal handling: os.Interrupt covers Ctrl+C on Windows and
// SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runState := joystick.NewRunState()
	store := joystick.NewStore()

	// Ctrl+C delivery that survives SDL3's console handler override on
	// Windows; re-registered once the poller has SDL up.
	ctrlCh := make(chan struct{})
	reregister := console.SetupCtrlHandler(ctrlCh)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Poller owns the device handle for its whole lifetime.
	poller := joystick.NewPoller(store, runState, cfg.Deadzone, cfg.PollInterval)
	poller.OnReady(reregister)

	var pollErr error
	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		pollErr = poller.Run(ctx)
		if pollErr != nil {
			runState.Terminate()
		}
	}()

	changes := make(chan joystick.Snapshot, 64)
	consumer := command.NewConsumer(store, runState,
		command.NewMapping(cfg.Commands), command.LogSink{W: os.Stdout},
		os.Stdout, cfg.RenderInterval)
	consumer.PublishTo(changes)

	var srv *server.Server
	if !cfg.NoHTTP {
		h := hub.NewHub()
		go h.Run()
		broadcaster := hub.NewBroadcaster(h, changes)
		go broadcaster.Run()

		srv = server.New(h, broadcaster, getFrontendFS(), cfg.ListenAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("HTTP server error: %v", err)
			}
		}()
		log.Printf("State viewer: %s", viewerURL(cfg.ListenAddr))
	}

	listener := console.NewListener(runState, os.Stdin, os.Stdout, cfg.ControlInterval)
	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		listener.Run(ctx)
	}()

	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(viewerURL(cfg.ListenAddr), runState.Terminate)
			t.Run(tray.GetIcon())
		}()
	}

	go func() {
		select {
		case <-sigCh:
		case <-ctrlCh:
		case <-ctx.Done():
			return
		}
		log.Println("Shutting down...")
		runState.Terminate()
	}()

	// The consumer is the main loop; it returns once the run state reaches
	// Terminating.
	consumer.Run(ctx)

	cancel()
	<-pollerDone
	<-listenerDone

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	if pollErr != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", pollErr)
		return 1
	}

	fmt.Println("\nProgram exited cleanly")
	return 0
}

func viewerURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
