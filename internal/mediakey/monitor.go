package mediakey

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// State is the lifecycle state of a Monitor.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Verdict tells the tap what to do with an intercepted event.
type Verdict int

const (
	// PassThrough returns the event unmodified to normal OS processing.
	PassThrough Verdict = iota
	// Consume swallows the event so the OS default handler never sees it.
	Consume
)

// Handler processes one intercepted event. A Tap calls it serially from a
// single dedicated loop.
type Handler func(RawEvent) Verdict

// Tap installs the system-wide interception point.
type Tap interface {
	// Install creates the interception point and starts delivering events to
	// handle. It returns once installation has succeeded or failed.
	Install(handle Handler) (Installation, error)
}

// Installation is an installed interception point.
type Installation interface {
	// Remove uninstalls the tap, releases its OS resources and returns after
	// the loop delivering events has exited.
	Remove()
}

// Delegate receives media key presses. OnMediaKeyPress runs synchronously on
// the tap loop and must return quickly: a blocked delegate stalls the
// system-wide tap. It may query State or IsMonitoring, but must not call
// StartMonitoring, StopMonitoring or HandleLocalMediaKeyEvent synchronously.
type Delegate interface {
	OnMediaKeyPress(m *Monitor, code Code, repeat bool)
}

// DelegateFunc adapts a function literal to the Delegate interface.
type DelegateFunc func(m *Monitor, code Code, repeat bool)

// OnMediaKeyPress calls the underlying function.
func (f DelegateFunc) OnMediaKeyPress(m *Monitor, code Code, repeat bool) {
	f(m, code, repeat)
}

// Options configures a Monitor.
type Options struct {
	// Tap defaults to the platform backend.
	Tap Tap
	// Oracle defaults to the platform receiver query. A nil platform oracle
	// means every key down is treated as addressed to this process.
	Oracle Oracle
	Logger *zerolog.Logger
}

// activeMonitors counts Active monitors across the process.
var activeMonitors atomic.Int64

// Monitor watches media keys system-wide and forwards presses to its
// delegate while this process is the active media key receiver.
//
// Lock order: lifeMu, then dispatchMu, then mu. mu is never held while
// waiting on another lock, so State is always cheap.
type Monitor struct {
	tap  Tap
	gate *receiverGate
	log  zerolog.Logger

	// lifeMu serialises StartMonitoring and StopMonitoring.
	lifeMu sync.Mutex

	// dispatchMu is held for every dispatch, tap or local. owner is the
	// session allowed to dispatch from the tap; nil means the local path
	// owns dispatch.
	dispatchMu sync.Mutex
	owner      *tapSession

	mu      sync.Mutex
	session *tapSession

	delegateMu sync.RWMutex
	delegate   Delegate
	delegateID uint64
}

// tapSession is one Active period.
type tapSession struct {
	inst Installation
}

// NewMonitor creates an Inactive monitor.
func NewMonitor(opts Options) *Monitor {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "mediakey").Logger()
	}
	tap := opts.Tap
	if tap == nil {
		tap = defaultTap(log)
	}
	oracle := opts.Oracle
	if oracle == nil {
		oracle = defaultOracle()
	}
	return &Monitor{
		tap:  tap,
		gate: newReceiverGate(oracle, log),
		log:  log,
	}
}

// StartMonitoring installs the global tap. Calling it while Active is a
// no-op. On failure the monitor stays Inactive and the error, which wraps
// ErrPermissionDenied when access is missing, is returned once; callers
// decide whether to retry.
func (m *Monitor) StartMonitoring() error {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	if m.IsMonitoring() {
		return nil
	}

	s := &tapSession{}
	inst, err := m.tap.Install(func(event RawEvent) Verdict {
		return m.handleTapEvent(s, event)
	})
	if err != nil {
		m.log.Error().Err(err).Msg("Failed to install media key tap")
		return fmt.Errorf("start media key monitoring: %w", err)
	}
	s.inst = inst

	// Waits for an in-flight local dispatch; after this the local path
	// stays quiet until Stop.
	m.dispatchMu.Lock()
	m.owner = s
	m.dispatchMu.Unlock()

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	if n := activeMonitors.Add(1); n > 1 {
		m.log.Warn().Int64("active", n).Msg("Multiple media key monitors active in this process")
	}
	m.log.Info().Msg("Media key monitoring started")
	return nil
}

// StopMonitoring uninstalls the global tap. Calling it while Inactive is a
// no-op. Once it returns the delegate receives no further tap events.
func (m *Monitor) StopMonitoring() {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()

	m.mu.Lock()
	s := m.session
	m.session = nil
	m.mu.Unlock()
	if s == nil {
		return
	}

	// Waits for an in-flight tap dispatch, which may itself call State.
	m.dispatchMu.Lock()
	m.owner = nil
	m.dispatchMu.Unlock()

	s.inst.Remove()
	activeMonitors.Add(-1)
	m.log.Info().Msg("Media key monitoring stopped")
}

// Close stops monitoring. It allows `defer m.Close()` for scoped release.
func (m *Monitor) Close() error {
	m.StopMonitoring()
	return nil
}

// State reports whether the global tap is installed.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return Active
	}
	return Inactive
}

// IsMonitoring reports whether the monitor is Active.
func (m *Monitor) IsMonitoring() bool {
	return m.State() == Active
}

// HandleLocalMediaKeyEvent handles an event delivered to this process by the
// normal event path. It is ignored while the tap owns dispatch, and does
// nothing for events that are not media key downs.
func (m *Monitor) HandleLocalMediaKeyEvent(event RawEvent) {
	press, ok := Classify(event)
	if !ok || !press.Down {
		return
	}

	m.dispatchMu.Lock()
	defer m.dispatchMu.Unlock()
	if m.owner != nil {
		return
	}
	m.dispatch(press)
}

func (m *Monitor) handleTapEvent(s *tapSession, event RawEvent) Verdict {
	press, ok := Classify(event)
	if !ok {
		return PassThrough
	}

	m.dispatchMu.Lock()
	defer m.dispatchMu.Unlock()

	// Late callback from a stopped session, or one not yet live.
	if m.owner != s {
		return PassThrough
	}
	if !press.Down {
		return Consume
	}
	if !m.gate.allows() {
		m.log.Debug().Stringer("key", press.Code).Msg("Not the active media key receiver, ignoring")
		return Consume
	}
	m.dispatch(press)
	return Consume
}

func (m *Monitor) dispatch(press KeyPress) {
	m.delegateMu.RLock()
	d := m.delegate
	m.delegateMu.RUnlock()

	if d == nil {
		return
	}
	d.OnMediaKeyPress(m, press.Code, press.Repeat)
}

// Registration is the link between a Monitor and its delegate. The monitor
// never owns the delegate: the owner revokes the registration when the
// delegate goes away.
type Registration struct {
	m  *Monitor
	id uint64
}

// SetDelegate makes d the single delegate, replacing any previous one.
// Passing nil detaches the current delegate.
func (m *Monitor) SetDelegate(d Delegate) *Registration {
	m.delegateMu.Lock()
	defer m.delegateMu.Unlock()
	m.delegateID++
	m.delegate = d
	return &Registration{m: m, id: m.delegateID}
}

// Revoke detaches the delegate if it is still the registered one. A
// dispatch already in progress may still complete.
func (r *Registration) Revoke() {
	if r == nil || r.m == nil {
		return
	}
	r.m.delegateMu.Lock()
	defer r.m.delegateMu.Unlock()
	if r.m.delegateID == r.id {
		r.m.delegate = nil
	}
}
