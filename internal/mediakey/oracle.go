package mediakey

import (
	"sync"

	"github.com/rs/zerolog"
)

// Oracle answers whether this process is the application the OS currently
// designates to receive media keys. Implementations must return quickly;
// they are called from the tap loop for every key down.
type Oracle interface {
	IsActiveReceiver() (bool, error)
}

// OracleFunc adapts a function literal to the Oracle interface.
type OracleFunc func() (bool, error)

// IsActiveReceiver calls the underlying function.
func (f OracleFunc) IsActiveReceiver() (bool, error) {
	return f()
}

// receiverGate applies the fallback policy on top of an Oracle: when the
// arbitration state cannot be read, the process is treated as the receiver.
// A duplicate reaction by two apps is preferred over never reacting at all.
type receiverGate struct {
	oracle Oracle
	log    zerolog.Logger

	warnOnce sync.Once
}

func newReceiverGate(oracle Oracle, log zerolog.Logger) *receiverGate {
	return &receiverGate{oracle: oracle, log: log}
}

func (g *receiverGate) allows() bool {
	if g.oracle == nil {
		g.fallback(ErrOracleUnavailable)
		return true
	}
	active, err := g.oracle.IsActiveReceiver()
	if err != nil {
		g.fallback(err)
		return true
	}
	return active
}

func (g *receiverGate) fallback(err error) {
	g.warnOnce.Do(func() {
		g.log.Warn().Err(err).Msg("Cannot determine active media key receiver, assuming this app")
	})
}
