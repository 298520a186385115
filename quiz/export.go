package quiz

import (
	"context"
	"strings"
)

// NoteIDPrefix starts every export payload; the flashcard browser accepts it as a search.
const NoteIDPrefix = "nid:"

// FormatNoteIDs builds "nid:<id1>,<id2>,...".
func FormatNoteIDs(ids ...string) string {
	return NoteIDPrefix + strings.Join(ids, ",")
}

// CopyCurrentID copies the note id of the displayed question and returns the payload.
func (s *Session) CopyCurrentID(ctx context.Context) string {
	payload := FormatNoteIDs(s.questions[s.current].ID)
	s.copy(ctx, payload)
	return payload
}

// CopyIncorrectIDs copies the ids of every incorrectly answered question.
// With no incorrect answers it only logs and returns "".
func (s *Session) CopyIncorrectIDs(ctx context.Context) string {
	if len(s.incorrectIDs) == 0 {
		s.logger.Println("No incorrect answers to copy.")
		return ""
	}
	payload := FormatNoteIDs(s.incorrectIDs...)
	s.copy(ctx, payload)
	return payload
}

func (s *Session) copy(ctx context.Context, payload string) {
	if s.clipboard == nil {
		s.logger.Printf("No clipboard configured, dropping %q", payload)
		return
	}
	if err := s.clipboard.Copy(ctx, payload); err != nil {
		s.logger.Printf("Unable to copy %q: %v", payload, err)
	}
}
