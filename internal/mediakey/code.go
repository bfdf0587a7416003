package mediakey

import (
	"fmt"
	"strings"
)

// Code identifies a media key. The values are the HID system key types
// (NX_KEYTYPE_*) and must not change.
type Code int

const (
	Play        Code = 16
	Next        Code = 17
	Previous    Code = 18
	FastForward Code = 19
	Rewind      Code = 20
)

// Codes lists every supported media key in ABI order.
var Codes = []Code{Play, Next, Previous, FastForward, Rewind}

var codeNames = map[Code]string{
	Play:        "play",
	Next:        "next",
	Previous:    "previous",
	FastForward: "fast_forward",
	Rewind:      "rewind",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Valid reports whether c is one of the supported media keys.
func (c Code) Valid() bool {
	_, ok := codeNames[c]
	return ok
}

// ParseCode maps a key name such as "play" or "fast-forward" to its Code.
func ParseCode(name string) (Code, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for code, n := range codeNames {
		if n == normalized {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown media key %q", name)
}
