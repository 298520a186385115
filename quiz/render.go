package quiz

import "quizdeck/models"

// RenderTarget is the display surface of a session. The browser page and
// the terminal screen both implement it.
type RenderTarget interface {
	DisplayQuestion(view models.QuestionView)
	SetOptionState(position int, state models.OptionState)
	SetTagList(tags []models.Tag)
}

// Render displays the question at index. Indexes outside the question list
// fall back to question 0, which then becomes the current question.
func (s *Session) Render(index int) {
	if index < 0 || index >= len(s.questions) {
		index = 0
	}
	s.current = index
	s.pending = 0

	q := s.questions[index]
	chosen, answered := s.ledger.Answer(index)

	view := models.QuestionView{
		Index:    index,
		Total:    len(s.questions),
		ID:       q.ID,
		Prompt:   q.Prompt,
		Options:  make([]models.OptionView, models.OptionCount),
		Answered: answered,
		Disabled: answered,
	}
	if answered {
		view.Extra = q.Extra
	}
	states := make([]models.OptionState, models.OptionCount)
	for i := range view.Options {
		position := i + 1
		state := models.OptionNeutral
		if answered {
			state = FeedbackState(position, q.CorrectOption, chosen)
		}
		states[i] = state
		view.Options[i] = models.OptionView{
			Position: position,
			Text:     q.Options[i],
			Selected: answered && chosen == position,
			State:    state,
		}
	}

	s.target.DisplayQuestion(view)
	for i, state := range states {
		s.target.SetOptionState(i+1, state)
	}
	s.target.SetTagList(s.tags.Apply(q.Tags))
}

// FeedbackState marks the option at position once a question is answered.
// The correct option is always marked correct, even when it was not chosen;
// the chosen option is marked incorrect only when it differs from the correct one.
func FeedbackState(position, correct, chosen int) models.OptionState {
	switch {
	case position == correct:
		return models.OptionCorrect
	case position == chosen:
		return models.OptionIncorrect
	default:
		return models.OptionNeutral
	}
}
