package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdeck/models"
	"quizdeck/utils"
)

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00d26a")).Bold(true)
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("#d32f2f")).Bold(true)
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleTag       = lipgloss.NewStyle().Background(lipgloss.Color("#2c2c2c")).Padding(0, 1)
	styleTagHard   = lipgloss.NewStyle().Background(lipgloss.Color("#d32f2f")).Foreground(lipgloss.Color("15")).Padding(0, 1)
	styleExtra     = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
	styleModal     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#888888")).Padding(1, 3)
	styleStatus    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Screen is the terminal render target. It implements quiz.RenderTarget and
// quiz.OverlayTarget and draws through lipgloss.
type Screen struct {
	deckName       string
	question       *models.QuestionView
	tags           []models.Tag
	scoreboard     *models.Scoreboard
	overlayVisible bool
}

// NewScreen returns an empty screen titled deckName.
func NewScreen(deckName string) *Screen {
	return &Screen{deckName: deckName}
}

func (s *Screen) DisplayQuestion(view models.QuestionView) {
	view.Options = append([]models.OptionView(nil), view.Options...)
	s.question = &view
}

func (s *Screen) SetOptionState(position int, state models.OptionState) {
	if s.question == nil || position < 1 || position > len(s.question.Options) {
		return
	}
	s.question.Options[position-1].State = state
}

func (s *Screen) SetTagList(tags []models.Tag) { s.tags = tags }

func (s *Screen) ShowScoreboard(sb models.Scoreboard) { s.scoreboard = &sb }

func (s *Screen) SetOverlayVisible(visible bool) { s.overlayVisible = visible }

// Question returns the displayed question, or nil before the first render.
func (s *Screen) Question() *models.QuestionView { return s.question }

// OverlayVisible reports whether the scoreboard covers the question.
func (s *Screen) OverlayVisible() bool { return s.overlayVisible }

// Draw renders the screen. cursor is the highlighted option position, 0 for none.
func (s *Screen) Draw(cursor, pending int) string {
	if s.overlayVisible && s.scoreboard != nil {
		return s.drawScoreboard()
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render(s.deckName))
	if s.question == nil {
		return b.String()
	}
	q := s.question
	b.WriteString(styleSubtle.Render(fmt.Sprintf("  question %d of %d", q.Index+1, q.Total)))
	b.WriteString("\n\n")
	b.WriteString(utils.StripMarkup(q.Prompt))
	b.WriteString("\n\n")
	for _, opt := range q.Options {
		b.WriteString(s.drawOption(opt, cursor, pending))
		b.WriteString("\n")
	}
	if q.Extra != "" {
		b.WriteString("\n")
		b.WriteString(styleExtra.Render(utils.StripMarkup(q.Extra)))
		b.WriteString("\n")
	}
	if len(s.tags) > 0 {
		b.WriteString("\n")
		rendered := make([]string, len(s.tags))
		for i, t := range s.tags {
			if t.Emphasis {
				rendered[i] = styleTagHard.Render(t.Name)
			} else {
				rendered[i] = styleTag.Render(t.Name)
			}
		}
		b.WriteString(strings.Join(rendered, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) drawOption(opt models.OptionView, cursor, pending int) string {
	marker := "( )"
	switch {
	case opt.State == models.OptionCorrect:
		marker = styleCorrect.Render("(✔)")
	case opt.State == models.OptionIncorrect:
		marker = styleIncorrect.Render("(✘)")
	case opt.Selected || opt.Position == pending:
		marker = "(•)"
	}
	prefix := "  "
	if opt.Position == cursor && !s.question.Disabled {
		prefix = styleCursor.Render("> ")
	}
	return fmt.Sprintf("%s%s %d. %s", prefix, marker, opt.Position, utils.StripMarkup(opt.Text))
}

func (s *Screen) drawScoreboard() string {
	sb := s.scoreboard
	rows := []string{
		styleHeader.Render("Scoreboard"),
		"",
		fmt.Sprintf("%-18s %d", "Total Questions", sb.TotalQuestions),
		fmt.Sprintf("%-18s %d", "Correct Answers", sb.Tally.Correct),
		fmt.Sprintf("%-18s %d", "Wrong Answers", sb.Tally.Incorrect),
		fmt.Sprintf("%-18s %d", "Not Answered", sb.Tally.Unanswered),
		"",
		styleSubtle.Render("w: copy wrong answers · esc: close"),
	}
	return styleModal.Render(strings.Join(rows, "\n"))
}

// statusLine renders the last action message.
func statusLine(msg string) string {
	if msg == "" {
		return ""
	}
	return styleStatus.Render(msg)
}
