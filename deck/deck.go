// Package deck loads the ordered question list from an exported deck.
package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"quizdeck/config"
	"quizdeck/db"
	"quizdeck/models"
)

var (
	// ErrEmptyDeck is returned when a deck holds no notes.
	ErrEmptyDeck = errors.New("deck has no notes")
	// ErrMalformedNote is returned when a note cannot become a question.
	ErrMalformedNote = errors.New("malformed note")
)

// Source supplies the question list; it satisfies quiz.Loader.
type Source interface {
	Load(ctx context.Context) ([]models.Question, error)
}

// JSONSource reads the exported deck file.
type JSONSource struct {
	Path string
}

// Load implements Source.
func (s JSONSource) Load(_ context.Context) ([]models.Question, error) {
	notes, err := ReadJSON(s.Path)
	if err != nil {
		return nil, err
	}
	return Convert(notes)
}

// ReadJSON decodes the notes of a deck file without validating them.
func ReadJSON(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}
	var notes []models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	return notes, nil
}

// YAMLSource reads the same records from a YAML sequence.
type YAMLSource struct {
	Path string
}

// Load implements Source.
func (s YAMLSource) Load(_ context.Context) ([]models.Question, error) {
	notes, err := ReadYAML(s.Path)
	if err != nil {
		return nil, err
	}
	return Convert(notes)
}

// ReadYAML decodes the notes of a YAML deck file without validating them.
func ReadYAML(path string) ([]models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file %s: %w", path, err)
	}
	var notes []models.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	return notes, nil
}

// PostgresSource reads the notes of one deck from the notes table.
type PostgresSource struct {
	Pool db.Querier
	Deck string
}

// Load implements Source.
func (s PostgresSource) Load(ctx context.Context) ([]models.Question, error) {
	notes, err := db.LoadNotes(ctx, s.Pool, s.Deck)
	if err != nil {
		return nil, err
	}
	return Convert(notes)
}

// ReadFile decodes a deck file, choosing the format by extension.
func ReadFile(path string) ([]models.Note, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return ReadYAML(path)
	}
	return ReadJSON(path)
}

// Convert validates notes and turns them into questions, keeping their order.
// A single bad note fails the whole deck.
func Convert(notes []models.Note) ([]models.Question, error) {
	if len(notes) == 0 {
		return nil, ErrEmptyDeck
	}
	questions := make([]models.Question, 0, len(notes))
	for i, n := range notes {
		q, err := toQuestion(n)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func toQuestion(n models.Note) (models.Question, error) {
	id := strings.TrimSpace(string(n.NoteID))
	if id == "" {
		return models.Question{}, fmt.Errorf("%w: missing noteId", ErrMalformedNote)
	}
	answer, err := strconv.Atoi(strings.TrimSpace(n.Answer))
	if err != nil || answer < 1 || answer > models.OptionCount {
		return models.Question{}, fmt.Errorf("%w: note %s has answer %q, want 1-%d", ErrMalformedNote, id, n.Answer, models.OptionCount)
	}
	return models.Question{
		ID:            id,
		Prompt:        n.Question,
		Options:       [models.OptionCount]string{n.OP1, n.OP2, n.OP3, n.OP4},
		CorrectOption: answer,
		Tags:          n.Tags,
		Extra:         n.Extra,
	}, nil
}

// Open builds the Source named by cfg.Driver. The returned func releases
// any connection the source holds.
func Open(ctx context.Context, cfg config.DeckConfig) (Source, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "json":
		return JSONSource{Path: cfg.Path}, func() {}, nil
	case "yaml", "yml":
		return YAMLSource{Path: cfg.Path}, func() {}, nil
	case "postgres":
		pool, err := db.InitDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return PostgresSource{Pool: pool, Deck: cfg.Name}, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown deck driver %q", cfg.Driver)
	}
}
