// Package feedback is the boundary to audio/haptic playback. The overlay
// core decides when feedback fires; drivers live behind the Player
// interface.
package feedback

import "log"

// Player plays scan feedback. Implementations must be safe to call from
// the overlay control thread and must not block.
type Player interface {
	PlaySound(name string) error
	Vibrate()
}

// LogPlayer is the default Player. It records feedback in the log and
// never fails, which keeps hosts without an audio stack working.
type LogPlayer struct{}

func (LogPlayer) PlaySound(name string) error {
	log.Printf("Feedback: play sound %q", name)
	return nil
}

func (LogPlayer) Vibrate() {
	log.Printf("Feedback: vibrate")
}
