package tray

import (
	"context"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"
	"github.com/petems/mediakey-tray/internal/app"
	"github.com/petems/mediakey-tray/internal/logging"
	"github.com/petems/mediakey-tray/internal/mediakey"
	"github.com/rs/zerolog"
)

type UI struct {
	app     *app.App
	version string
	commit  string
	log     zerolog.Logger

	// onStart runs once the menu exists.
	onStart func()

	mu      sync.Mutex
	status  string
	lastKey string

	// Menu items
	mStatus  *systray.MenuItem
	mLastKey *systray.MenuItem
	mMonitor *systray.MenuItem
}

// Status update methods for the app to call
func (u *UI) SetActive() {
	u.updateStatus("active")
}

func (u *UI) SetLocalOnly() {
	u.updateStatus("local")
}

func (u *UI) SetInactive() {
	u.updateStatus("off")
}

func (u *UI) SetError() {
	u.updateStatus("error")
}

func (u *UI) SetLastKey(code mediakey.Code, repeat bool) {
	label := keyLabel(code, repeat)
	u.mu.Lock()
	u.lastKey = label
	item := u.mLastKey
	u.mu.Unlock()
	if item != nil {
		item.SetTitle("Last key: " + label)
	}
}

func New(application *app.App, log zerolog.Logger, version, commit string) *UI {
	return &UI{
		app:     application,
		version: version,
		commit:  commit,
		log:     log,
		status:  "off",
	}
}

// OnStart registers a function to run after the tray is ready.
func (u *UI) OnStart(fn func()) {
	u.onStart = fn
}

// Run blocks running the tray. It MUST be called from the main goroutine.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	systray.SetTooltip("Global media keys")

	u.mu.Lock()
	u.mStatus = systray.AddMenuItem(statusLabel(u.status), "Media key monitoring state")
	u.mStatus.Disable()
	u.mLastKey = systray.AddMenuItem("Last key: none", "Most recent media key")
	u.mLastKey.Disable()
	if u.lastKey != "" {
		u.mLastKey.SetTitle("Last key: " + u.lastKey)
	}
	systray.AddSeparator()
	u.mMonitor = systray.AddMenuItemCheckbox("Monitor Media Keys", "Capture media keys while in the background", u.app.IsMonitoring())
	u.mu.Unlock()
	u.updateStatus(u.currentStatus())

	systray.AddSeparator()
	mCopy := systray.AddMenuItem("Copy Status", "Copy a status summary to the clipboard")
	mLogs := systray.AddMenuItem("Copy Log Path", "Copy the log file location to the clipboard")
	mAbout := systray.AddMenuItem("About", "About MediaKey Tray")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	// Event loop
	go u.handleEvents(mCopy, mLogs, mAbout, mQuit)

	if u.onStart != nil {
		go u.onStart()
	}
}

func (u *UI) handleEvents(mCopy, mLogs, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mMonitor.ClickedCh:
			u.toggleMonitoring()
		case <-mCopy.ClickedCh:
			u.copyStatus()
		case <-mLogs.ClickedCh:
			u.copyLogPath()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) toggleMonitoring() {
	on, err := u.app.Toggle()
	if on {
		u.mMonitor.Check()
	} else {
		u.mMonitor.Uncheck()
	}
	if err != nil {
		u.log.Warn().Err(err).Msg("Media key monitoring not enabled")
		return
	}
	u.log.Info().Bool("monitoring", on).Msg("Toggled media key monitoring")
}

func (u *UI) copyStatus() {
	if err := clipboard.WriteAll(u.app.StatusSummary()); err != nil {
		u.log.Error().Err(err).Msg("Failed to copy status")
		return
	}
	u.log.Info().Msg("Copied status to clipboard")
}

func (u *UI) copyLogPath() {
	path := logging.LogPath()
	if err := clipboard.WriteAll(path); err != nil {
		u.log.Error().Err(err).Msg("Failed to copy log path")
		return
	}
	u.log.Info().Str("path", path).Msg("Copied log path to clipboard")
}

func (u *UI) showAbout() {
	fmt.Printf("MediaKey Tray %s (%s)\nGlobal media keys for the active player\n", u.version, u.commit)
}

func (u *UI) onExit() {
	// Cleanup
}

func (u *UI) currentStatus() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

// updateStatus sets the tray title with a key emoji and status indicator
func (u *UI) updateStatus(status string) {
	u.mu.Lock()
	u.status = status
	item := u.mStatus
	monitor := u.mMonitor
	u.mu.Unlock()

	// Nothing to draw until the tray is running.
	if item == nil {
		return
	}
	systray.SetTitle(fmt.Sprintf("⏯ %s", emojiForStatus(status)))
	item.SetTitle(statusLabel(status))
	if monitor != nil {
		if status == "active" {
			monitor.Check()
		} else {
			monitor.Uncheck()
		}
	}
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(status string) string {
	switch status {
	case "active":
		return "🟢" // Green - global tap installed
	case "local":
		return "🟡" // Yellow - foreground events only
	case "off":
		return "⚫️" // Black - not monitoring
	case "error":
		return "⚪️" // White - error
	default:
		return "🟡"
	}
}

func statusLabel(status string) string {
	switch status {
	case "active":
		return "Status: capturing media keys"
	case "off":
		return "Status: not monitoring"
	case "error":
		return "Status: error"
	default:
		return "Status: local events only"
	}
}

func keyLabel(code mediakey.Code, repeat bool) string {
	if repeat {
		return code.String() + " (held)"
	}
	return code.String()
}
