//go:build !darwin && !linux && !windows

package mediakey

import "github.com/rs/zerolog"

type unsupportedTap struct{}

func defaultTap(zerolog.Logger) Tap {
	return unsupportedTap{}
}

func (unsupportedTap) Install(Handler) (Installation, error) {
	return nil, ErrUnsupported
}
