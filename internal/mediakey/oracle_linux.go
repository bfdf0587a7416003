//go:build linux

package mediakey

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	mprisPlayer     = "org.mpris.MediaPlayer2.Player"

	mprisQueryTimeout = 150 * time.Millisecond
)

// mprisOracle decides receivership from the MPRIS players on the session
// bus: another process that is playing while this one is not owns the keys.
type mprisOracle struct {
	pid uint32
}

func defaultOracle() Oracle {
	return &mprisOracle{pid: uint32(os.Getpid())}
}

func (o *mprisOracle) IsActiveReceiver() (bool, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return false, fmt.Errorf("%w: session bus: %v", ErrOracleUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mprisQueryTimeout)
	defer cancel()

	var names []string
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return false, fmt.Errorf("%w: list bus names: %v", ErrOracleUnavailable, err)
	}

	var players []playerState
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		var pid uint32
		if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.GetConnectionUnixProcessID", 0, name).Store(&pid); err != nil {
			continue
		}
		var status dbus.Variant
		err := conn.Object(name, mprisObjectPath).
			CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, mprisPlayer, "PlaybackStatus").
			Store(&status)
		if err != nil {
			continue
		}
		playback, _ := status.Value().(string)
		players = append(players, playerState{PID: pid, Playing: playback == "Playing"})
	}
	return isReceiver(o.pid, players), nil
}
