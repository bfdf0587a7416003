package mediakey

import "testing"

func TestIsReceiver(t *testing.T) {
	const self = 100

	tests := []struct {
		name    string
		players []playerState
		want    bool
	}{
		{"no players", nil, true},
		{"nobody playing", []playerState{{PID: 200}, {PID: self}}, true},
		{"only self playing", []playerState{{PID: self, Playing: true}}, true},
		{"other playing", []playerState{{PID: 200, Playing: true}, {PID: self}}, false},
		{"both playing", []playerState{{PID: 200, Playing: true}, {PID: self, Playing: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReceiver(self, tt.players); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
