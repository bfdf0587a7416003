//go:build linux || windows

package mediakey

import (
	"errors"
	"sync"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
)

// libuiohook virtual key codes for the media keys it knows about. It has no
// fast-forward or rewind codes.
const (
	vcMediaPlay     = 0xE022
	vcMediaNext     = 0xE019
	vcMediaPrevious = 0xE010
)

var hookCodes = map[uint16]Code{
	vcMediaPlay:     Play,
	vcMediaNext:     Next,
	vcMediaPrevious: Previous,
}

var errHookBusy = errors.New("global input hook already installed in this process")

// The gohook hook is process-global; only one installation may own it.
var (
	hookMu        sync.Mutex
	hookInstalled bool
)

// hookTap observes global key events through gohook. The hook is
// listen-only: a Consume verdict cannot keep the event from other apps.
type hookTap struct {
	log zerolog.Logger
}

func defaultTap(log zerolog.Logger) Tap {
	return hookTap{log: log}
}

type hookInstallation struct {
	handle Handler
	log    zerolog.Logger
	held   map[Code]bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func (t hookTap) Install(handle Handler) (Installation, error) {
	hookMu.Lock()
	defer hookMu.Unlock()

	if hookInstalled {
		return nil, errHookBusy
	}

	events := hook.Start()
	inst := &hookInstallation{
		handle: handle,
		log:    t.log,
		held:   make(map[Code]bool),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	hookInstalled = true
	go inst.run(events)
	return inst, nil
}

func (i *hookInstallation) run(events chan hook.Event) {
	defer close(i.done)
	for {
		select {
		case <-i.stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if raw, ok := i.translate(ev); ok {
				i.handle(raw)
			}
		}
	}
}

// translate re-encodes a gohook key event into the raw media key form.
// libuiohook reports auto-repeat as repeated presses without a release in
// between, so held keys mark repeats.
func (i *hookInstallation) translate(ev hook.Event) (RawEvent, bool) {
	code, ok := hookCodes[ev.Keycode]
	if !ok {
		return RawEvent{}, false
	}
	switch ev.Kind {
	case hook.KeyHold:
		repeat := i.held[code]
		i.held[code] = true
		return EncodeRawEvent(code, true, repeat), true
	case hook.KeyUp:
		delete(i.held, code)
		return EncodeRawEvent(code, false, false), true
	default:
		return RawEvent{}, false
	}
}

func (i *hookInstallation) Remove() {
	i.stopOnce.Do(func() {
		close(i.stop)
		<-i.done
		hook.End()

		hookMu.Lock()
		hookInstalled = false
		hookMu.Unlock()
		i.log.Debug().Msg("Global input hook released")
	})
	<-i.done
}
