package quiz

import "quizdeck/models"

// score updates the tally for a first-time answer. Unanswered never drops below zero.
func (s *Session) score(index, option int) {
	q := s.questions[index]
	if option == q.CorrectOption {
		s.tally.Correct++
	} else {
		s.tally.Incorrect++
		s.incorrectIDs = append(s.incorrectIDs, q.ID)
	}
	s.tally.Unanswered = max(0, s.tally.Unanswered-1)

	if s.overlay == OverlayOpen && s.overlayTarget != nil {
		s.overlayTarget.ShowScoreboard(s.Scoreboard())
	}
}

// Tally returns the current counts.
func (s *Session) Tally() models.Tally {
	return s.tally
}

// IncorrectIDs returns the ids of incorrectly answered questions in answer order.
func (s *Session) IncorrectIDs() []string {
	out := make([]string, len(s.incorrectIDs))
	copy(out, s.incorrectIDs)
	return out
}

// Scoreboard returns what the scoreboard overlay shows.
func (s *Session) Scoreboard() models.Scoreboard {
	return models.Scoreboard{
		TotalQuestions: len(s.questions),
		Tally:          s.tally,
		IncorrectIDs:   s.IncorrectIDs(),
	}
}
