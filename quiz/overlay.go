package quiz

import (
	"context"
	"sort"

	"quizdeck/models"
)

// OverlayState is the lifecycle of the scoreboard overlay.
type OverlayState int

const (
	OverlayAbsent OverlayState = iota // never built
	OverlayClosed
	OverlayOpen
)

func (o OverlayState) String() string {
	switch o {
	case OverlayClosed:
		return "closed"
	case OverlayOpen:
		return "open"
	default:
		return "absent"
	}
}

// OverlayTarget is the display surface of the scoreboard overlay.
type OverlayTarget interface {
	ShowScoreboard(sb models.Scoreboard)
	SetOverlayVisible(visible bool)
}

// ClickTarget names what a pointer click landed on.
type ClickTarget string

const (
	ClickBackdrop     ClickTarget = "backdrop"      // area around the overlay panel
	ClickWrongAnswers ClickTarget = "wrong-answers" // the "Wrong Answers" row
)

const scoreboardListener = "scoreboard-overlay"

// Overlay returns the overlay state.
func (s *Session) Overlay() OverlayState {
	return s.overlay
}

// ToggleOverlay opens a closed overlay and closes an open one. The first call
// builds the overlay and registers its click listener, then opens it.
func (s *Session) ToggleOverlay() OverlayState {
	if s.overlay == OverlayAbsent {
		s.buildOverlay()
	}
	if s.overlay == OverlayOpen {
		s.closeOverlay()
	} else {
		s.openOverlay()
	}
	return s.overlay
}

// Click dispatches a pointer click to every registered listener.
func (s *Session) Click(ctx context.Context, target ClickTarget) {
	keys := make([]string, 0, len(s.listeners))
	for k := range s.listeners {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.listeners[k](ctx, target)
	}
}

// subscribe registers fn under key. A key is registered once; later calls keep the first listener.
func (s *Session) subscribe(key string, fn func(context.Context, ClickTarget)) {
	if _, ok := s.listeners[key]; ok {
		return
	}
	s.listeners[key] = fn
}

func (s *Session) buildOverlay() {
	s.overlay = OverlayClosed
	s.subscribe(scoreboardListener, s.overlayClick)
}

func (s *Session) openOverlay() {
	s.overlay = OverlayOpen
	if s.overlayTarget != nil {
		s.overlayTarget.ShowScoreboard(s.Scoreboard())
		s.overlayTarget.SetOverlayVisible(true)
	}
}

func (s *Session) closeOverlay() {
	s.overlay = OverlayClosed
	if s.overlayTarget != nil {
		s.overlayTarget.SetOverlayVisible(false)
	}
}

func (s *Session) overlayClick(ctx context.Context, target ClickTarget) {
	if s.overlay != OverlayOpen {
		return
	}
	switch target {
	case ClickBackdrop:
		s.closeOverlay()
	case ClickWrongAnswers:
		s.CopyIncorrectIDs(ctx)
	}
}
