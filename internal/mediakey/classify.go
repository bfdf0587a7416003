package mediakey

const (
	// EventTypeSystemDefined is the NSSystemDefined event type that carries
	// auxiliary control buttons.
	EventTypeSystemDefined = 14

	// SubtypeAuxControlButtons is NX_SUBTYPE_AUX_CONTROL_BUTTONS.
	SubtypeAuxControlButtons = 8

	keyStateDown = 0x0A
	keyStateUp   = 0x0B
)

// RawEvent is the platform-neutral form of a low-level system-defined input
// event. Data1 packs the key type in its high 16 bits and the key flags in
// its low 16 bits.
type RawEvent struct {
	Type    int
	Subtype int
	Data1   int64
}

// KeyPress is a classified media key transition.
type KeyPress struct {
	Code   Code
	Down   bool
	Repeat bool
}

// Classify reports whether event encodes one of the supported media keys.
// Events that are not aux control buttons, or that carry a key type outside
// Codes (volume, brightness, eject...), or a key state other than down or
// up, are not applicable.
func Classify(event RawEvent) (KeyPress, bool) {
	if event.Type != EventTypeSystemDefined || event.Subtype != SubtypeAuxControlButtons {
		return KeyPress{}, false
	}

	code := Code((event.Data1 & 0xFFFF0000) >> 16)
	if !code.Valid() {
		return KeyPress{}, false
	}

	flags := event.Data1 & 0xFFFF
	state := (flags & 0xFF00) >> 8
	if state != keyStateDown && state != keyStateUp {
		return KeyPress{}, false
	}
	return KeyPress{
		Code:   code,
		Down:   state == keyStateDown,
		Repeat: flags&0x1 == 1,
	}, true
}

// EncodeRawEvent builds the raw form Classify decodes back into
// KeyPress{code, down, repeat}.
func EncodeRawEvent(code Code, down, repeat bool) RawEvent {
	state := int64(keyStateUp)
	if down {
		state = keyStateDown
	}
	flags := state << 8
	if repeat {
		flags |= 0x1
	}
	return RawEvent{
		Type:    EventTypeSystemDefined,
		Subtype: SubtypeAuxControlButtons,
		Data1:   int64(code)<<16 | flags,
	}
}
