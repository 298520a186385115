// --- quizdeck/models/models.go ---
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// Question struct represents one quiz item as the session sees it.
// Options are addressed by 1-based position; CorrectOption is always in 1..OptionCount.
type Question struct {
	ID            string              `json:"id"`
	Prompt        string              `json:"prompt"`
	Options       [OptionCount]string `json:"options"`
	CorrectOption int                 `json:"correct_option"`
	Tags          []string            `json:"tags"`
	Extra         string              `json:"extra,omitempty"`
}

// Option returns the text at a 1-based position, or "" when out of range.
func (q Question) Option(position int) string {
	if position < 1 || position > OptionCount {
		return ""
	}
	return q.Options[position-1]
}

// NoteID is the flashcard note identifier. Exports carry it either as a
// JSON number or a string; it is kept in its textual form.
type NoteID string

// UnmarshalJSON accepts both 1712345678901 and "1712345678901".
func (n *NoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid noteId: %w", err)
		}
		*n = NoteID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid noteId %s: %w", data, err)
	}
	*n = NoteID(num.String())
	return nil
}

// UnmarshalYAML keeps the scalar text regardless of its resolved tag.
func (n *NoteID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid noteId at line %d: expected a scalar", value.Line)
	}
	*n = NoteID(value.Value)
	return nil
}

// Note struct mirrors one record of the exported deck file
// (noteId, Question, OP1..OP4, Answer, Extra, tags).
type Note struct {
	NoteID   NoteID   `json:"noteId" yaml:"noteId"`
	Question string   `json:"Question" yaml:"Question"`
	OP1      string   `json:"OP1" yaml:"OP1"`
	OP2      string   `json:"OP2" yaml:"OP2"`
	OP3      string   `json:"OP3" yaml:"OP3"`
	OP4      string   `json:"OP4" yaml:"OP4"`
	Answer   string   `json:"Answer" yaml:"Answer"` // "1".."4"
	Extra    string   `json:"Extra" yaml:"Extra"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// OptionState is the feedback mark of a single option.
type OptionState int

const (
	OptionNeutral OptionState = iota
	OptionCorrect
	OptionIncorrect
)

func (s OptionState) String() string {
	switch s {
	case OptionCorrect:
		return "correct"
	case OptionIncorrect:
		return "incorrect"
	default:
		return "neutral"
	}
}

// MarshalText lets option states travel as "neutral" / "correct" / "incorrect".
func (s OptionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *OptionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "neutral":
		*s = OptionNeutral
	case "correct":
		*s = OptionCorrect
	case "incorrect":
		*s = OptionIncorrect
	default:
		return fmt.Errorf("unknown option state %q", text)
	}
	return nil
}

// OptionView struct is one selectable option of the displayed question.
type OptionView struct {
	Position int         `json:"position"`
	Text     string      `json:"text"`
	Selected bool        `json:"selected"`
	State    OptionState `json:"state"`
}

// QuestionView struct is what a render target receives for the displayed question.
type QuestionView struct {
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Options  []OptionView `json:"options"`
	Answered bool         `json:"answered"`
	Disabled bool         `json:"disabled"`
	Extra    string       `json:"extra,omitempty"` // only set once answered
}

// Tag struct is a display tag after filtering.
type Tag struct {
	Name     string `json:"name"`
	Emphasis bool   `json:"emphasis"`
}

// Class returns the style class of the tag.
func (t Tag) Class() string {
	if t.Emphasis {
		return "tag tag-hard"
	}
	return "tag"
}

// Tally struct holds the aggregate counts of a session.
type Tally struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
}

// Total is always the number of questions in the session.
func (t Tally) Total() int {
	return t.Correct + t.Incorrect + t.Unanswered
}

// Scoreboard struct is the content of the scoreboard overlay.
type Scoreboard struct {
	TotalQuestions int      `json:"total_questions"`
	Tally          Tally    `json:"tally"`
	IncorrectIDs   []string `json:"incorrect_ids"`
}

// AnswerRequest for submitting an answer
type AnswerRequest struct {
	Index  int `json:"index" binding:"min=0"`
	Option int `json:"option" binding:"required,min=1,max=4"`
}

// MoveRequest for navigating between questions
type MoveRequest struct {
	Direction int `json:"direction" binding:"required,oneof=-1 1"`
}

// KeyRequest carries a browser keydown event
type KeyRequest struct {
	Key string `json:"key" binding:"required"`
	Alt bool   `json:"alt"`
}

// OverlayClickRequest carries a click while the scoreboard overlay exists
type OverlayClickRequest struct {
	Target string `json:"target" binding:"required"`
}

// StateResponse is returned by every session API call
type StateResponse struct {
	Question   *QuestionView `json:"question,omitempty"`
	Tags       []Tag         `json:"tags"`
	Tally      Tally         `json:"tally"`
	Overlay    string        `json:"overlay"`
	Scoreboard *Scoreboard   `json:"scoreboard,omitempty"`
	Copied     string        `json:"copied,omitempty"`
	Accepted   bool          `json:"accepted"`
}
