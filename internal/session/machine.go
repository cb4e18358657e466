package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const eventBuffer = 64

// Machine owns the session state. A single goroutine (Run) applies events and
// task results; tasks run on their own goroutines and never touch the state.
type Machine struct {
	reducer *Reducer
	clip    Clipboard
	notify  Notifier
	log     *zap.Logger

	events  chan Event
	results chan Result
	done    chan struct{}
	once    sync.Once

	state State // owned by Run
	snap  atomic.Pointer[State]

	mu   sync.Mutex
	subs map[chan State]struct{}
}

// NewMachine constructs a Machine in the initial state.
func NewMachine(r *Reducer, clip Clipboard, notify Notifier, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	m := &Machine{
		reducer: r,
		clip:    clip,
		notify:  notify,
		log:     log,
		events:  make(chan Event, eventBuffer),
		results: make(chan Result),
		done:    make(chan struct{}),
		state:   Initial(),
		subs:    map[chan State]struct{}{},
	}
	first := m.state.Clone()
	m.snap.Store(&first)
	return m
}

// Dispatch queues e. It blocks while the queue is full and returns immediately once Run has stopped.
func (m *Machine) Dispatch(e Event) {
	select {
	case m.events <- e:
	case <-m.done:
	}
}

// Snapshot returns a copy of the latest published state.
func (m *Machine) Snapshot() State {
	return m.snap.Load().Clone()
}

// Subscribe returns a channel that always holds the most recent state, starting
// with the current one. Slow readers skip intermediate snapshots. Call cancel to stop.
func (m *Machine) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	m.mu.Lock()
	ch <- m.snap.Load().Clone()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	return ch, func() {
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
	}
}

// Run processes events and task results until ctx is cancelled, then waits for running tasks.
func (m *Machine) Run(ctx context.Context) error {
	defer m.once.Do(func() { close(m.done) })
	g, gctx := errgroup.WithContext(ctx)
	for {
		select {
		case <-ctx.Done():
			m.once.Do(func() { close(m.done) })
			return g.Wait()
		case e := <-m.events:
			m.apply(gctx, g, e)
		case r := <-m.results:
			m.applyResult(r)
		}
	}
}

func (m *Machine) apply(ctx context.Context, g *errgroup.Group, e Event) {
	start := time.Now()
	out := m.reducer.Reduce(m.state, e)
	m.state = out.State

	if out.Copy != nil {
		if err := m.clip.SetText(*out.Copy); err != nil {
			m.log.Warn("clipboard", zap.Error(err))
			m.notify.Notify(MsgCopyFailed)
		} else {
			m.notify.Notify(MsgCopied)
		}
	}
	if out.Notice != "" {
		m.notify.Notify(out.Notice)
	}
	if out.Task != nil {
		t := *out.Task
		g.Go(func() error {
			res := runTask(ctx, m.log, t)
			select {
			case m.results <- res:
			case <-ctx.Done():
			}
			return nil
		})
	}
	m.publish()

	name := "<nil>"
	if e != nil {
		name = e.eventName()
	}
	m.log.Debug("event",
		zap.String("event", name),
		zap.String("dialog", m.state.Dialog.String()),
		zap.Bool("task", out.Task != nil),
		zap.Duration("dur", time.Since(start)),
	)
}

func (m *Machine) applyResult(r Result) {
	if r.Patch != nil {
		m.state = r.Patch(m.state.Clone())
	}
	if r.Notice != "" {
		m.notify.Notify(r.Notice)
	}
	m.publish()
}

func (m *Machine) publish() {
	s := m.state.Clone()
	m.snap.Store(&s)

	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.Clone()
	}
}
