package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/petems/mediakey-tray/internal/config"
	"github.com/petems/mediakey-tray/internal/mediakey"
	"github.com/petems/mediakey-tray/internal/permissions"
	"github.com/rs/zerolog"
)

// Monitor is the part of *mediakey.Monitor the app drives.
type Monitor interface {
	StartMonitoring() error
	StopMonitoring()
	IsMonitoring() bool
	SetDelegate(d mediakey.Delegate) *mediakey.Registration
	HandleLocalMediaKeyEvent(event mediakey.RawEvent)
}

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetActive()
	SetLocalOnly()
	SetInactive()
	SetError()
	SetLastKey(code mediakey.Code, repeat bool)
}

type Config struct {
	Monitor Monitor
	Config  *config.Config
	Logger  zerolog.Logger
	// OnKey is the host's reaction to a media key; optional.
	OnKey func(code mediakey.Code, repeat bool)
	// CheckPermissions defaults to permissions.CheckInputMonitoring.
	CheckPermissions func(prompt bool) permissions.Report
	// WatchLocal defaults to mediakey.WatchLocalEvents.
	WatchLocal    func(handle func(mediakey.RawEvent)) (stop func(), err error)
	StatusUpdater StatusUpdater // Optional - can be nil
}

// Stats is a snapshot of what the app has seen.
type Stats struct {
	Monitoring  bool
	LocalEvents bool
	Presses     int
	Repeats     int
	LastKey     string
	LastError   string
}

type App struct {
	monitor Monitor
	keys    map[mediakey.Code]bool
	log     zerolog.Logger
	onKey   func(mediakey.Code, bool)
	perms   func(bool) permissions.Report
	watch   func(func(mediakey.RawEvent)) (func(), error)
	status  StatusUpdater

	registration *mediakey.Registration

	// localMu is never held while dispatching; the local watcher calls
	// back on the main thread.
	localMu   sync.Mutex
	stopLocal func()

	mu      sync.Mutex
	presses int
	repeats int
	lastKey string
	lastErr error
}

func New(cfg Config) (*App, error) {
	if cfg.Monitor == nil {
		return nil, errors.New("app: monitor is required")
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = config.DefaultConfig()
	}
	keys, err := appCfg.EnabledKeys()
	if err != nil {
		return nil, err
	}
	perms := cfg.CheckPermissions
	if perms == nil {
		perms = permissions.CheckInputMonitoring
	}
	watch := cfg.WatchLocal
	if watch == nil {
		watch = mediakey.WatchLocalEvents
	}

	a := &App{
		monitor: cfg.Monitor,
		keys:    keys,
		log:     cfg.Logger,
		onKey:   cfg.OnKey,
		perms:   perms,
		watch:   watch,
		status:  cfg.StatusUpdater,
	}
	a.registration = cfg.Monitor.SetDelegate(a)
	return a, nil
}

// SetStatusUpdater sets the status sink (for circular dependency resolution
// with the tray). It must be called before monitoring starts.
func (a *App) SetStatusUpdater(status StatusUpdater) {
	a.status = status
}

// OnMediaKeyPress implements mediakey.Delegate. It runs on the tap loop, so
// it only records the key and hands it to the host.
func (a *App) OnMediaKeyPress(_ *mediakey.Monitor, code mediakey.Code, repeat bool) {
	if !a.keys[code] {
		a.log.Debug().Stringer("key", code).Msg("Ignoring disabled media key")
		return
	}

	a.mu.Lock()
	if repeat {
		a.repeats++
	} else {
		a.presses++
	}
	a.lastKey = code.String()
	a.mu.Unlock()

	a.log.Info().Stringer("key", code).Bool("repeat", repeat).Msg("Media key")
	if a.status != nil {
		a.status.SetLastKey(code, repeat)
	}
	if a.onKey != nil {
		a.onKey(code, repeat)
	}
}

// Enable installs the global media key tap. If it cannot be installed the
// error is returned and the app keeps handling local events, if it has a
// local watcher running.
func (a *App) Enable() error {
	report := a.perms(true)
	if !report.Allowed() {
		a.log.Warn().Str("permission", report.Status.String()).Msg(report.Guidance)
	}

	err := a.monitor.StartMonitoring()

	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()

	if err != nil {
		if errors.Is(err, mediakey.ErrPermissionDenied) && a.localEvents() {
			a.log.Warn().Err(err).Msg("Global media keys unavailable, handling local events only")
			if a.status != nil {
				a.status.SetLocalOnly()
			}
		} else {
			a.log.Error().Err(err).Msg("Failed to enable media key monitoring")
			if a.status != nil {
				a.status.SetError()
			}
		}
		return err
	}

	if a.status != nil {
		a.status.SetActive()
	}
	return nil
}

// Disable removes the global tap; local events are handled again.
func (a *App) Disable() {
	a.monitor.StopMonitoring()
	if a.status == nil {
		return
	}
	if a.localEvents() {
		a.status.SetLocalOnly()
	} else {
		a.status.SetInactive()
	}
}

// Toggle flips global monitoring and reports the new state.
func (a *App) Toggle() (bool, error) {
	if a.monitor.IsMonitoring() {
		a.Disable()
		return false, nil
	}
	if err := a.Enable(); err != nil {
		return false, err
	}
	return true, nil
}

// HandleLocalEvent forwards an event delivered to the app's own event
// stream; the monitor ignores it while the global tap is active.
func (a *App) HandleLocalEvent(event mediakey.RawEvent) {
	a.monitor.HandleLocalMediaKeyEvent(event)
}

// StartLocalEvents starts feeding the app's own event stream to
// HandleLocalEvent. It needs the platform event loop, so the tray calls it
// once the menu is up. Calling it again is a no-op.
func (a *App) StartLocalEvents() error {
	a.localMu.Lock()
	defer a.localMu.Unlock()
	if a.stopLocal != nil {
		return nil
	}
	stop, err := a.watch(a.HandleLocalEvent)
	if err != nil {
		return fmt.Errorf("watch local media key events: %w", err)
	}
	a.stopLocal = stop
	a.log.Debug().Msg("Watching local media key events")
	return nil
}

func (a *App) localEvents() bool {
	a.localMu.Lock()
	defer a.localMu.Unlock()
	return a.stopLocal != nil
}

func (a *App) IsMonitoring() bool {
	return a.monitor.IsMonitoring()
}

func (a *App) Stats() Stats {
	// Ask the monitor first: a.mu is also taken from inside dispatch.
	monitoring := a.monitor.IsMonitoring()
	local := a.localEvents()

	a.mu.Lock()
	defer a.mu.Unlock()
	s := Stats{
		Monitoring:  monitoring,
		LocalEvents: local,
		Presses:     a.presses,
		Repeats:     a.repeats,
		LastKey:     a.lastKey,
	}
	if a.lastErr != nil {
		s.LastError = a.lastErr.Error()
	}
	return s
}

// StatusSummary renders Stats as plain text for the clipboard.
func (a *App) StatusSummary() string {
	s := a.Stats()
	mode := "off"
	switch {
	case s.Monitoring:
		mode = "global"
	case s.LocalEvents:
		mode = "local only"
	}
	lines := []string{
		fmt.Sprintf("Media key monitoring: %s", mode),
		fmt.Sprintf("Presses: %d (repeats: %d)", s.Presses, s.Repeats),
	}
	if s.LastKey != "" {
		lines = append(lines, fmt.Sprintf("Last key: %s", s.LastKey))
	}
	if s.LastError != "" {
		lines = append(lines, fmt.Sprintf("Last error: %s", s.LastError))
	}
	return strings.Join(lines, "\n")
}

func (a *App) Shutdown(ctx context.Context) error {
	a.monitor.StopMonitoring()

	a.localMu.Lock()
	stop := a.stopLocal
	a.stopLocal = nil
	a.localMu.Unlock()
	if stop != nil {
		stop()
	}

	a.registration.Revoke()
	a.log.Info().Msg("Media key monitor shut down")
	return nil
}
