package joystick

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"
)

// DefaultPollInterval is the pause between event drains. Long enough to
// bound CPU use, short against human reaction time.
const DefaultPollInterval = 60 * time.Millisecond

// Poller owns the SDL joystick subsystem and at most one open device
// handle. It drains the SDL event queue on a fixed cadence, normalizes
// axis/button events and writes them into the Store, and follows hot-plug
// attach/detach transitions. The handle never leaves this type; everything
// else observes the device only through the Store.
type Poller struct {
	store    *Store
	run      *RunState
	deadzone float64
	interval time.Duration

	js   *sdl.Joystick
	id   sdl.JoystickID
	name string

	ready func()
}

func NewPoller(store *Store, run *RunState, deadzone float64, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		store:    store,
		run:      run,
		deadzone: deadzone,
		interval: interval,
	}
}

// OnReady registers a hook invoked once the SDL subsystem is up. Used to
// re-register the Windows console control handler that SDL init clobbers.
// Must be called before Run.
func (p *Poller) OnReady(f func()) {
	p.ready = f
}

// Run initializes SDL and loops until the run state leaves Running or the
// context is done, then closes any open handle and quits SDL. Must be
// called on its own goroutine; the OS thread is locked for SDL's benefit.
//
// A subsystem init failure is the only error returned; it is fatal to the
// caller. The absence of a device is not an error: the poller starts in a
// detached state and waits for a hot-plug attach.
func (p *Poller) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("init joystick subsystem: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 joystick subsystem initialized")
	if p.ready != nil {
		p.ready()
	}

	// Open the first device that is already connected, if any.
	for _, id := range sdl.GetJoysticks() {
		if p.open(id) {
			break
		}
	}

	for p.run.State() == Running && ctx.Err() == nil {
		p.drainEvents()
		sdl.DelayNS(uint64(p.interval.Nanoseconds()))
	}

	p.closeDevice()
	return nil
}

// drainEvents empties the SDL event queue, applying each event to the Store.
func (p *Poller) drainEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			if p.js == nil {
				p.open(event.JDevice().Which)
			}

		case sdl.EventJoystickRemoved:
			p.handleRemoved(event.JDevice().Which)

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			if p.js != nil && ae.Which == p.id {
				p.store.SetAxis(int(ae.Axis), NormalizeAxis(ae.Value, p.deadzone))
			}

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			if p.js != nil && be.Which == p.id {
				p.store.SetButton(int(be.Button), true)
			}

		case sdl.EventJoystickButtonUp:
			be := event.JButton()
			if p.js != nil && be.Which == p.id {
				p.store.SetButton(int(be.Button), false)
			}
		}
	}
}

func (p *Poller) open(instanceID sdl.JoystickID) bool {
	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return false
	}

	p.js = js
	p.id = sdl.GetJoystickID(js)
	p.name = sdl.GetJoystickName(js)

	numAxes := sdl.GetNumJoystickAxes(js)
	numButtons := sdl.GetNumJoystickButtons(js)
	p.store.Resize(p.name, int(numAxes), int(numButtons))

	log.Printf("Joystick connected: %s (ID=%d) axes=%d buttons=%d",
		p.name, p.id, numAxes, numButtons)
	return true
}

// handleRemoved closes the device if the detach matches the open instance
// id. Detach events for any other id are stale and ignored.
func (p *Poller) handleRemoved(instanceID sdl.JoystickID) {
	if p.js == nil || instanceID != p.id {
		return
	}
	log.Printf("Joystick disconnected: %s", p.name)
	sdl.CloseJoystick(p.js)
	p.js = nil
	p.store.Clear()
}

func (p *Poller) closeDevice() {
	if p.js == nil {
		return
	}
	sdl.CloseJoystick(p.js)
	p.js = nil
}
