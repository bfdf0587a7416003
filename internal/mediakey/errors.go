package mediakey

import "errors"

var (
	// ErrPermissionDenied indicates the OS refused to install the global
	// event tap, usually because input monitoring/accessibility access has
	// not been granted.
	ErrPermissionDenied = errors.New("permission to observe global input events denied")

	// ErrOracleUnavailable indicates the active media-key receiver could not
	// be determined. The monitor treats this as "is receiver".
	ErrOracleUnavailable = errors.New("active media key receiver unavailable")

	// ErrUnsupported indicates no global tap backend exists for this platform.
	ErrUnsupported = errors.New("global media key tap not supported on this platform")
)
