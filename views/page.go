// Package views is the browser render target: it keeps what the page shows
// and renders it through gin's HTML renderer.
package views

import (
	"quizdeck/models"
)

// Option marker colours.
const (
	CorrectColor   = "#00d26a"
	IncorrectColor = "#d32f2f"
	DefaultStroke  = "#888888"
	DefaultFill    = "#2c2c2c"
)

// Page holds the rendered state of one quiz page. It implements
// quiz.RenderTarget and quiz.OverlayTarget.
type Page struct {
	deckName       string
	question       *models.QuestionView
	tags           []models.Tag
	scoreboard     *models.Scoreboard
	overlayVisible bool
}

// PageData is handed to the templates.
type PageData struct {
	DeckName       string
	Question       *models.QuestionView
	Tags           []models.Tag
	Scoreboard     *models.Scoreboard
	OverlayVisible bool
	Error          string
}

// NewPage returns an empty page titled deckName.
func NewPage(deckName string) *Page {
	return &Page{deckName: deckName}
}

// DisplayQuestion implements quiz.RenderTarget.
func (p *Page) DisplayQuestion(view models.QuestionView) {
	view.Options = append([]models.OptionView(nil), view.Options...)
	p.question = &view
}

// SetOptionState implements quiz.RenderTarget.
func (p *Page) SetOptionState(position int, state models.OptionState) {
	if p.question == nil || position < 1 || position > len(p.question.Options) {
		return
	}
	p.question.Options[position-1].State = state
}

// SetTagList implements quiz.RenderTarget.
func (p *Page) SetTagList(tags []models.Tag) {
	p.tags = tags
}

// ShowScoreboard implements quiz.OverlayTarget.
func (p *Page) ShowScoreboard(sb models.Scoreboard) {
	p.scoreboard = &sb
}

// SetOverlayVisible implements quiz.OverlayTarget.
func (p *Page) SetOverlayVisible(visible bool) {
	p.overlayVisible = visible
}

// Data returns a copy of the page state for rendering.
func (p *Page) Data() PageData {
	d := PageData{
		DeckName:       p.deckName,
		Tags:           append([]models.Tag(nil), p.tags...),
		OverlayVisible: p.overlayVisible,
	}
	if p.question != nil {
		q := *p.question
		q.Options = append([]models.OptionView(nil), p.question.Options...)
		d.Question = &q
	}
	if p.scoreboard != nil {
		sb := *p.scoreboard
		d.Scoreboard = &sb
	}
	return d
}

// ErrorData is the page shown when no session could be started.
func ErrorData(deckName, message string) PageData {
	return PageData{DeckName: deckName, Error: message}
}
