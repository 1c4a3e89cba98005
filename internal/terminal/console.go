package terminal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/acevedoonyx/onyx/internal/logger"
)

var (
	// ErrBooting is returned by Submit before the boot sequence completes
	ErrBooting = errors.New("console is booting")

	// ErrBusy is returned by Submit while a query is in flight
	ErrBusy = errors.New("console is processing a query")
)

// BootStep is one message of the boot sequence, due At after boot starts
type BootStep struct {
	At      time.Duration
	Message string
}

// DefaultBootSequence returns the five start-up messages
func DefaultBootSequence() []BootStep {
	return []BootStep{
		{At: 400 * time.Millisecond, Message: "ONYX_CORE INITIALIZING..."},
		{At: 800 * time.Millisecond, Message: "INTEGRATING DIAGNOSTIC_ENGINE... [OK]"},
		{At: 1200 * time.Millisecond, Message: "CALIBRATING GROWTH_METRICS... [10X READY]"},
		{At: 1600 * time.Millisecond, Message: "ONYX SYSTEMS v5.0.1 - SECURE SHELL READY."},
		{At: 1900 * time.Millisecond, Message: "Welcome to Onyx. Use 'help' to see system commands."},
	}
}

// ScaleBootSequence multiplies every offset by factor
func ScaleBootSequence(steps []BootStep, factor float64) []BootStep {
	if factor < 0 {
		factor = 0
	}
	out := make([]BootStep, len(steps))
	for i, step := range steps {
		out[i] = BootStep{
			At:      time.Duration(float64(step.At) * factor),
			Message: step.Message,
		}
	}
	return out
}

// ConsoleOptions configures a Console
type ConsoleOptions struct {
	Options
	BootSequence []BootStep
	Clock        func() time.Time
}

// Console wires a session, an interpreter and the boot sequence behind the
// input gate used by every front end.
type Console struct {
	session *Session
	interp  *Interpreter
	steps   []BootStep
	log     *logger.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	bootOnce sync.Once
}

// NewConsole creates a console in the BOOTING state
func NewConsole(intel Intelligence, opts ConsoleOptions) *Console {
	var storeOpts []StoreOption
	if opts.Clock != nil {
		storeOpts = append(storeOpts, WithClock(opts.Clock))
	}
	session := NewSession(NewStore(storeOpts...))

	steps := opts.BootSequence
	if steps == nil {
		steps = DefaultBootSequence()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Console{
		session: session,
		interp:  NewInterpreter(session, intel, opts.Options),
		steps:   steps,
		log:     log.WithComponent("console"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Session returns the state container
func (c *Console) Session() *Session {
	return c.session
}

// Interpreter returns the command interpreter
func (c *Console) Interpreter() *Interpreter {
	return c.interp
}

// Boot starts the boot sequence. Only the first call has an effect.
func (c *Console) Boot() {
	c.bootOnce.Do(func() {
		c.wg.Add(1)
		go c.runBoot()
	})
}

func (c *Console) runBoot() {
	defer c.wg.Done()

	if len(c.steps) == 0 {
		c.session.SetStatus(StatusReady)
		return
	}

	start := time.Now()
	for i, step := range c.steps {
		wait := step.At - time.Since(start)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-c.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		c.session.Append(step.Message, CategorySystem)
		if i == len(c.steps)-1 {
			c.session.SetStatus(StatusReady)
			c.log.Debug("boot complete", logger.Duration(time.Since(start)))
		}
	}
}

// Submit forwards raw to the interpreter unless input is currently gated
func (c *Console) Submit(raw string) error {
	switch c.session.Status() {
	case StatusBooting:
		return ErrBooting
	case StatusProcessing:
		return ErrBusy
	}
	c.interp.Handle(raw)
	return nil
}

// Ready reports whether Submit would accept input
func (c *Console) Ready() bool {
	st := c.session.Status()
	return st != StatusBooting && st != StatusProcessing
}

// Wait blocks until the boot sequence and all background work have settled
func (c *Console) Wait() {
	c.wg.Wait()
	c.interp.Wait()
}

// Close stops the boot sequence and cancels background work
func (c *Console) Close() {
	c.cancel()
	c.wg.Wait()
	c.interp.Close()
}
