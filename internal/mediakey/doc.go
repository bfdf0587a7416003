// Package mediakey intercepts hardware media keys (play, next, previous,
// fast-forward, rewind) system-wide and forwards presses to a single
// delegate, but only while this process is the application the OS considers
// the active media key receiver. This keeps several media apps from reacting
// to the same key press.
//
// On macOS the keys are captured with a Quartz event tap, which requires
// Accessibility (input monitoring) approval; on Linux and Windows a global
// gohook listener is used. When the global tap cannot be installed the host
// can still feed events it receives itself to HandleLocalMediaKeyEvent; on
// macOS WatchLocalEvents collects them from the application's event loop.
package mediakey
