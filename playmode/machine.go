package playmode

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/scene"
	"go.uber.org/zap"
)

// ErrNoSnapshot means the machine left Stopped without holding a snapshot.
var ErrNoSnapshot = errors.New("play session has no snapshot")

// Snapshotter captures and restores the scene portion of a world.
// *scene.Serializer implements it.
type Snapshotter interface {
	Capture(storage *ecs.Storage) (*scene.Snapshot, error)
	Restore(storage *ecs.Storage, snap *scene.Snapshot) error
}

// Machine owns the play state. The state only changes through Handle and
// the helpers built on it; everything runs on the caller's goroutine.
type Machine struct {
	storage   *ecs.Storage
	snapshots Snapshotter
	logger    *zap.Logger
	status    *ecs.Singleton[Status]

	state    State
	snapshot *scene.Snapshot
	busy     bool
	pending  []Request

	subscribers []func(Event)
}

func New(storage *ecs.Storage, snapshots Snapshotter, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		storage:   storage,
		snapshots: snapshots,
		logger:    logger.Named("playmode"),
		status:    ecs.NewSingleton[Status](storage, Status{State: Stopped}),
		state:     Stopped,
	}
}

func (m *Machine) State() State { return m.state }

// Snapshot returns the snapshot held by the current session, or nil while
// Stopped.
func (m *Machine) Snapshot() *scene.Snapshot { return m.snapshot }

// Session returns the id of the running play session.
func (m *Machine) Session() uuid.UUID {
	if m.snapshot == nil {
		return uuid.Nil
	}
	return m.snapshot.ID
}

// SimulationActive reports whether gameplay systems should tick.
func (m *Machine) SimulationActive() bool { return m.state == Playing }

// InPlayMode reports whether a play session exists, paused or not.
func (m *Machine) InPlayMode() bool { return m.state != Stopped }

// Gate returns a run condition for gameplay systems.
func (m *Machine) Gate() ecs.RunCondition { return m.SimulationActive }

// EditGate returns a run condition for editor-only systems such as gizmos.
func (m *Machine) EditGate() ecs.RunCondition {
	return func() bool { return !m.InPlayMode() }
}

// Subscribe registers fn for every Event. Requests made from inside fn are
// ignored.
func (m *Machine) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

func (m *Machine) Play() error   { return m.Handle(RequestPlay) }
func (m *Machine) Pause() error  { return m.Handle(RequestPause) }
func (m *Machine) Resume() error { return m.Handle(RequestResume) }
func (m *Machine) Stop() error   { return m.Handle(RequestStop) }

// Submit queues req for the next Process call.
func (m *Machine) Submit(req Request) {
	if m.busy {
		m.logger.Debug("ignoring request queued during transition", zap.Stringer("request", req))
		return
	}
	m.pending = append(m.pending, req)
}

// Process handles queued requests in order and returns their joined errors.
func (m *Machine) Process() error {
	pending := m.pending
	m.pending = nil

	var errs []error
	for _, req := range pending {
		if err := m.Handle(req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handle applies req. Requests with no legal edge from the current state are
// ignored, as are requests made while another transition is running. A
// failed capture or restore leaves the state unchanged and is returned.
func (m *Machine) Handle(req Request) error {
	if m.busy {
		m.logger.Debug("ignoring re-entrant request", zap.Stringer("request", req), zap.Stringer("state", m.state))
		return nil
	}
	m.busy = true
	defer func() { m.busy = false }()

	switch {
	case req == RequestPlay && m.state == Stopped:
		return m.begin(req)
	case req == RequestPlay && m.state == Paused,
		req == RequestResume && m.state == Paused,
		req == RequestTogglePause && m.state == Paused:
		m.set(req, Playing, m.Session())
	case req == RequestPause && m.state == Playing,
		req == RequestTogglePause && m.state == Playing:
		m.set(req, Paused, m.Session())
	case req == RequestStop && m.state != Stopped:
		return m.end(req)
	default:
		m.logger.Debug("ignoring request", zap.Stringer("request", req), zap.Stringer("state", m.state))
	}
	return nil
}

func (m *Machine) begin(req Request) error {
	start := time.Now()
	snap, err := m.snapshots.Capture(m.storage)
	if err != nil {
		m.fail(req, err)
		return err
	}

	m.snapshot = snap
	m.logger.Info("captured world",
		zap.Stringer("session", snap.ID),
		zap.Int("entities", snap.Len()),
		zap.Int("bytes", snap.Size()),
		zap.Duration("took", time.Since(start)),
	)
	m.set(req, Playing, snap.ID)
	return nil
}

func (m *Machine) end(req Request) error {
	if m.snapshot == nil {
		m.fail(req, ErrNoSnapshot)
		return ErrNoSnapshot
	}

	start := time.Now()
	if err := m.snapshots.Restore(m.storage, m.snapshot); err != nil {
		m.fail(req, err)
		return err
	}

	session := m.snapshot.ID
	m.logger.Info("restored world",
		zap.Stringer("session", session),
		zap.Int("entities", m.snapshot.Len()),
		zap.Duration("took", time.Since(start)),
	)
	m.snapshot = nil
	m.set(req, Stopped, session)
	return nil
}

// set commits a state change. session identifies the play session the
// change belongs to, which outlives the snapshot on Stop.
func (m *Machine) set(req Request, to State, session uuid.UUID) {
	from := m.state
	m.state = to

	*m.status.Get() = Status{State: to, Active: to == Playing, Session: m.Session()}
	m.logger.Info("state changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("session", session),
	)
	m.publish(Event{Request: req, From: from, To: to, Session: session})
}

func (m *Machine) fail(req Request, err error) {
	m.logger.Error("transition failed",
		zap.Stringer("request", req),
		zap.Stringer("state", m.state),
		zap.Error(err),
	)
	m.publish(Event{Request: req, From: m.state, To: m.state, Session: m.Session(), Err: err})
}

func (m *Machine) publish(event Event) {
	for _, fn := range m.subscribers {
		fn(event)
	}
}

// TransitionSystem drains the machine's request queue at the start of a
// frame. Register it before any system that reads the play state.
type TransitionSystem struct {
	Machine *Machine
}

func (s *TransitionSystem) Execute(frame *ecs.UpdateFrame) {
	// Failures already reach subscribers and the log
	_ = s.Machine.Process()
}
