// Package tui is the terminal front end: a bubbletea program around one quiz session.
package tui

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdeck/models"
	"quizdeck/quiz"
)

const helpText = "←/→/space: navigate · ↑/↓ enter or 1-4: answer · alt+x: copy id · alt+r: scoreboard · q: quit"

// recorder remembers the last payload handed to the clipboard so the
// status line can show it.
type recorder struct {
	inner quiz.Clipboard
	last  string
}

func (r *recorder) Copy(ctx context.Context, text string) error {
	r.last = text
	if r.inner == nil {
		return nil
	}
	return r.inner.Copy(ctx, text)
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	session *quiz.Session
	screen  *Screen
	clip    *recorder
	cursor  int
	status  string
	width   int
	height  int
}

// Options configure New.
type Options struct {
	DeckName  string
	Clipboard quiz.Clipboard
	TagFilter quiz.TagFilter // zero value keeps quiz.DefaultTagFilter
	Logger    *log.Logger
}

// New loads the deck through loader and returns a ready model.
func New(ctx context.Context, loader quiz.Loader, opts Options) (*Model, error) {
	screen := NewScreen(opts.DeckName)
	clip := &recorder{inner: opts.Clipboard}
	sessionOpts := []quiz.Option{quiz.WithClipboard(clip), quiz.WithLogger(opts.Logger)}
	if opts.TagFilter.Excluded != nil || opts.TagFilter.ExcludedPrefix != "" || opts.TagFilter.Emphasis != "" {
		sessionOpts = append(sessionOpts, quiz.WithTagFilter(opts.TagFilter))
	}
	session, err := quiz.Initialize(ctx, loader, screen, sessionOpts...)
	if err != nil {
		return nil, err
	}
	return &Model{ctx: ctx, session: session, screen: screen, clip: clip, cursor: 1}, nil
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, loader quiz.Loader, opts Options) error {
	m, err := New(ctx, loader, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.clip.last = ""
	m.status = ""
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "left":
		m.session.HandleKey(m.ctx, quiz.Key{Name: quiz.KeyArrowLeft})
		m.cursor = 1
	case "right":
		m.session.HandleKey(m.ctx, quiz.Key{Name: quiz.KeyArrowRight})
		m.cursor = 1
	case " ":
		m.session.HandleKey(m.ctx, quiz.Key{Name: quiz.KeySpace})
		m.cursor = 1
	case "alt+x", "alt+X":
		m.session.HandleKey(m.ctx, quiz.Key{Name: "x", Alt: true})
	case "alt+r", "alt+R":
		m.session.HandleKey(m.ctx, quiz.Key{Name: "r", Alt: true})
	case "up":
		m.moveCursor(-1)
	case "down":
		m.moveCursor(1)
	case "enter":
		p := m.session.Pending()
		if p == 0 {
			p = m.cursor
		}
		m.submit(p)
	case "1", "2", "3", "4":
		m.submit(int(key[0] - '0'))
	case "w":
		m.session.Click(m.ctx, quiz.ClickWrongAnswers)
	case "esc":
		m.session.Click(m.ctx, quiz.ClickBackdrop)
	}
	if m.clip.last != "" {
		m.status = "Copied " + m.clip.last
	}
	return nil
}

// submit answers the current question, unless the scoreboard hides it.
func (m *Model) submit(option int) {
	if m.screen.OverlayVisible() {
		return
	}
	m.session.SubmitAnswer(m.session.CurrentIndex(), option)
}

// moveCursor moves the option cursor and marks it as the pending choice.
func (m *Model) moveCursor(delta int) {
	if m.screen.OverlayVisible() {
		return
	}
	next := m.cursor + delta
	if next < 1 || next > models.OptionCount {
		return
	}
	m.cursor = next
	m.session.Select(next)
}

func (m *Model) View() string {
	body := m.screen.Draw(m.cursor, m.session.Pending())
	view := lipgloss.JoinVertical(lipgloss.Left, body, "", statusLine(m.status), styleSubtle.Render(helpText))
	if m.width > 0 && m.height > 0 && m.screen.OverlayVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}
