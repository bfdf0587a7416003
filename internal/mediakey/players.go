package mediakey

// playerState is what the receiver oracles learn about one media player
// registered with the OS.
type playerState struct {
	PID     uint32
	Playing bool
}

// isReceiver reports whether pid should act on media keys given the known
// players: it does unless another process is playing while pid is not.
func isReceiver(pid uint32, players []playerState) bool {
	otherPlaying := false
	for _, p := range players {
		if !p.Playing {
			continue
		}
		if p.PID == pid {
			return true
		}
		otherPlaying = true
	}
	return !otherPlaying
}
