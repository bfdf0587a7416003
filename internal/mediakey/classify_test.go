package mediakey

import "testing"

func TestClassifyRoundTripsEncodedEvents(t *testing.T) {
	for _, code := range Codes {
		for _, down := range []bool{true, false} {
			for _, repeat := range []bool{true, false} {
				press, ok := Classify(EncodeRawEvent(code, down, repeat))
				if !ok {
					t.Fatalf("expected %s down=%v repeat=%v to classify", code, down, repeat)
				}
				want := KeyPress{Code: code, Down: down, Repeat: repeat}
				if press != want {
					t.Fatalf("expected %+v, got %+v", want, press)
				}
			}
		}
	}
}

func TestClassifyDecodesPackedData1(t *testing.T) {
	// Play key down, as delivered by the HID system: type 16, state 0x0A.
	event := RawEvent{Type: 14, Subtype: 8, Data1: 0x00100A00}
	press, ok := Classify(event)
	if !ok {
		t.Fatal("expected play key to classify")
	}
	if press.Code != Play || !press.Down || press.Repeat {
		t.Fatalf("unexpected press %+v", press)
	}

	// Next key up with the repeat bit set.
	press, ok = Classify(RawEvent{Type: 14, Subtype: 8, Data1: 0x00110B01})
	if !ok {
		t.Fatal("expected next key to classify")
	}
	if press.Code != Next || press.Down || !press.Repeat {
		t.Fatalf("unexpected press %+v", press)
	}
}

func TestClassifyRejectsUnrelatedEvents(t *testing.T) {
	tests := []struct {
		name  string
		event RawEvent
	}{
		{"zero event", RawEvent{}},
		{"key down event type", RawEvent{Type: 10, Subtype: 8, Data1: 0x00100A00}},
		{"other subtype", RawEvent{Type: 14, Subtype: 7, Data1: 0x00100A00}},
		{"sound up key", RawEvent{Type: 14, Subtype: 8, Data1: 0x00000A00}},
		{"mute key", RawEvent{Type: 14, Subtype: 8, Data1: 0x00070A00}},
		{"eject key", RawEvent{Type: 14, Subtype: 8, Data1: 0x000E0A00}},
		{"illumination key", RawEvent{Type: 14, Subtype: 8, Data1: 0x00150A00}},
		{"play with zero state", RawEvent{Type: 14, Subtype: 8, Data1: 0x00100000}},
		{"play with unknown state", RawEvent{Type: 14, Subtype: 8, Data1: 0x00100C00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if press, ok := Classify(tt.event); ok {
				t.Fatalf("expected not applicable, got %+v", press)
			}
		})
	}
}

func TestCodeValuesMatchSystemKeyTypes(t *testing.T) {
	want := map[Code]int{Play: 16, Next: 17, Previous: 18, FastForward: 19, Rewind: 20}
	for code, value := range want {
		if int(code) != value {
			t.Errorf("%s: expected %d, got %d", code, value, int(code))
		}
	}
}

func TestParseCode(t *testing.T) {
	tests := map[string]Code{
		"play":         Play,
		" Next ":       Next,
		"previous":     Previous,
		"fast-forward": FastForward,
		"fast_forward": FastForward,
		"REWIND":       Rewind,
	}
	for input, want := range tests {
		got, err := ParseCode(input)
		if err != nil {
			t.Fatalf("ParseCode(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseCode(%q): expected %s, got %s", input, want, got)
		}
	}

	if _, err := ParseCode("volume_up"); err == nil {
		t.Fatal("expected error for unsupported key")
	}
}

func TestCodeStringUnknown(t *testing.T) {
	if got := Code(3).String(); got != "code(3)" {
		t.Fatalf("unexpected string %q", got)
	}
}
