//go:build !darwin

package mediakey

// WatchLocalEvents reports ErrUnsupported: media keys are only delivered to
// an application's own event loop on macOS.
func WatchLocalEvents(func(RawEvent)) (stop func(), err error) {
	return nil, ErrUnsupported
}
