package quiz

import (
	"context"
	"strings"
)

// Key names as reported by browser keydown events.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = " "
)

// Key is a single keypress.
type Key struct {
	Name string
	Alt  bool
}

// HandleKey applies the keyboard bindings:
//
//	ArrowLeft           previous question
//	ArrowRight, Space   next question
//	Alt+X               copy the current note id
//	Alt+R               toggle the scoreboard overlay
//
// It reports whether the key is bound.
func (s *Session) HandleKey(ctx context.Context, k Key) bool {
	switch {
	case k.Name == KeyArrowLeft:
		s.Move(-1)
	case k.Name == KeyArrowRight || k.Name == KeySpace:
		s.Move(1)
	case k.Alt && strings.EqualFold(k.Name, "x"):
		s.CopyCurrentID(ctx)
	case k.Alt && strings.EqualFold(k.Name, "r"):
		s.ToggleOverlay()
	default:
		return false
	}
	return true
}
