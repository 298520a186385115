// Package quiz implements the quiz interaction state machine: rendering of
// the active question, write-once answers, the running tally, navigation,
// export of note ids and the scoreboard overlay.
//
// A Session is not safe for concurrent use. Every method runs to completion
// before the next one starts; callers that receive input from several
// goroutines must serialize access themselves.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quizdeck/models"
	"quizdeck/utils"
)

// ErrNoQuestions is returned when a session is started without questions.
var ErrNoQuestions = errors.New("no questions to display")

// Loader supplies the ordered question list a session is built from.
type Loader interface {
	Load(ctx context.Context) ([]models.Question, error)
}

// Clipboard receives export payloads.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Session owns all mutable quiz state for one page load.
type Session struct {
	questions    []models.Question
	current      int
	pending      int // selected on the current question but not yet submitted
	ledger       *Ledger
	tally        models.Tally
	incorrectIDs []string

	target        RenderTarget
	overlayTarget OverlayTarget
	overlay       OverlayState
	listeners     map[string]func(context.Context, ClickTarget)

	clipboard Clipboard
	tags      TagFilter
	logger    *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard sets the export destination.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clipboard = c }
}

// WithTagFilter replaces DefaultTagFilter.
func WithTagFilter(f TagFilter) Option {
	return func(s *Session) { s.tags = f }
}

// WithLogger routes diagnostics to l instead of log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOverlayTarget sets the scoreboard overlay surface. When omitted and the
// render target also implements OverlayTarget, the render target is used.
func WithOverlayTarget(t OverlayTarget) Option {
	return func(s *Session) { s.overlayTarget = t }
}

// New starts a session over questions and renders question 0.
// An empty question list is logged and reported as ErrNoQuestions; nothing is rendered.
func New(questions []models.Question, target RenderTarget, opts ...Option) (*Session, error) {
	return configure(opts).start(questions, target)
}

// Initialize loads the question list through loader and starts a session.
// A failed or empty load is logged and leaves the caller without a session.
func Initialize(ctx context.Context, loader Loader, target RenderTarget, opts ...Option) (*Session, error) {
	s := configure(opts)
	questions, err := loader.Load(ctx)
	if err != nil {
		s.logger.Printf("Error loading questions: %v", err)
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return s.start(questions, target)
}

func configure(opts []Option) *Session {
	s := &Session{
		tags:      DefaultTagFilter(),
		logger:    log.Default(),
		listeners: make(map[string]func(context.Context, ClickTarget)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) start(questions []models.Question, target RenderTarget) (*Session, error) {
	if len(questions) == 0 {
		s.logger.Printf("Error initializing quiz: %v", ErrNoQuestions)
		return nil, ErrNoQuestions
	}
	if target == nil {
		return nil, errors.New("quiz: nil render target")
	}
	s.target = target
	if s.overlayTarget == nil {
		if ot, ok := target.(OverlayTarget); ok {
			s.overlayTarget = ot
		}
	}

	s.questions = make([]models.Question, len(questions))
	copy(s.questions, questions)
	s.ledger = NewLedger(len(questions))
	s.tally = models.Tally{Unanswered: len(questions)}
	s.current = 0
	s.Render(0)
	return s, nil
}

// Len returns the number of questions.
func (s *Session) Len() int {
	return len(s.questions)
}

// CurrentIndex returns the index of the displayed question.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the displayed question.
func (s *Session) Current() models.Question {
	return s.questions[s.current]
}

// Question returns the question at index.
func (s *Session) Question(index int) (models.Question, bool) {
	if index < 0 || index >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[index], true
}

// Answer returns the locked-in option for index.
func (s *Session) Answer(index int) (int, bool) {
	return s.ledger.Answer(index)
}

// Pending returns the selected-but-unsubmitted option of the current question, or 0.
func (s *Session) Pending() int {
	return s.pending
}

// Select marks position as the pending choice for the current question
// without locking it in. It is ignored once the question is answered.
func (s *Session) Select(position int) bool {
	if !utils.ValidPosition(position, models.OptionCount) {
		return false
	}
	if _, answered := s.ledger.Answer(s.current); answered {
		return false
	}
	s.pending = position
	return true
}

// SubmitAnswer locks in option for the question at index. The first answer
// wins: later calls for the same index are ignored and return false.
func (s *Session) SubmitAnswer(index, option int) bool {
	if index < 0 || index >= len(s.questions) {
		s.logger.Printf("Ignoring answer for question %d: out of range", index)
		return false
	}
	if !utils.ValidPosition(option, models.OptionCount) {
		s.logger.Printf("Ignoring answer %d for question %d: not an option", option, index)
		return false
	}
	if !s.ledger.Record(index, option) {
		return false
	}
	s.score(index, option)
	if index == s.current {
		// feedback overlay and disabled inputs
		s.Render(index)
	}
	return true
}

// Move navigates by direction (-1 or +1). Any pending selection on the
// question being left is submitted first. Targets outside the question list
// are dropped and the current index stays put.
func (s *Session) Move(direction int) bool {
	if direction != -1 && direction != 1 {
		return false
	}
	if s.pending != 0 {
		s.SubmitAnswer(s.current, s.pending)
		s.pending = 0
	}
	next := s.current + direction
	if next < 0 || next >= len(s.questions) {
		return false
	}
	s.current = next
	s.Render(next)
	return true
}
