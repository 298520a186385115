package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quizdeck/config"
	"quizdeck/models"
)

const sampleJSON = `[
  {"noteId": 1712345678901, "Question": "Capital of France?", "OP1": "Paris", "OP2": "Rome", "OP3": "Berlin", "OP4": "Madrid", "Answer": "1", "Extra": "", "tags": ["Prelims-2020", "GK", "Hard"]},
  {"noteId": "1712345678902", "Question": "2+2?", "OP1": "3", "OP2": "4", "OP3": "5", "OP4": "6", "Answer": " 2 ", "Extra": "basic", "tags": []}
]`

const sampleYAML = `
- noteId: 1712345678901
  Question: Capital of France?
  OP1: Paris
  OP2: Rome
  OP3: Berlin
  OP4: Madrid
  Answer: "1"
  tags: [Hard]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJSONSourceLoad(t *testing.T) {
	path := writeFile(t, "deck.json", sampleJSON)
	qs, err := JSONSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions", len(qs))
	}
	if qs[0].ID != "1712345678901" || qs[0].CorrectOption != 1 || qs[0].Option(1) != "Paris" {
		t.Fatalf("first question = %+v", qs[0])
	}
	if qs[1].ID != "1712345678902" || qs[1].CorrectOption != 2 || qs[1].Extra != "basic" {
		t.Fatalf("second question = %+v", qs[1])
	}
	if len(qs[0].Tags) != 3 {
		t.Fatalf("tags must be carried unfiltered, got %v", qs[0].Tags)
	}
}

func TestYAMLSourceLoad(t *testing.T) {
	path := writeFile(t, "deck.yaml", sampleYAML)
	qs, err := YAMLSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "1712345678901" || qs[0].Option(4) != "Madrid" {
		t.Fatalf("questions = %+v", qs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := JSONSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestConvertRejectsBadNotes(t *testing.T) {
	good := models.Note{NoteID: "1", Question: "q", OP1: "a", OP2: "b", OP3: "c", OP4: "d", Answer: "3"}
	cases := []struct {
		name    string
		notes   []models.Note
		wantErr error
	}{
		{"empty deck", nil, ErrEmptyDeck},
		{"answer out of range", []models.Note{good, {NoteID: "2", Answer: "5"}}, ErrMalformedNote},
		{"answer not a number", []models.Note{{NoteID: "2", Answer: "B"}}, ErrMalformedNote},
		{"missing id", []models.Note{{Answer: "1"}}, ErrMalformedNote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qs, err := Convert(tc.notes)
			if !errors.Is(err, tc.wantErr) || qs != nil {
				t.Fatalf("Convert = %v, %v; want %v", qs, err, tc.wantErr)
			}
		})
	}
}

func TestReadFileByExtension(t *testing.T) {
	notes, err := ReadFile(writeFile(t, "deck.yml", sampleYAML))
	if err != nil || len(notes) != 1 {
		t.Fatalf("yaml: %v, %v", notes, err)
	}
	notes, err = ReadFile(writeFile(t, "Custom Study Session.json", sampleJSON))
	if err != nil || len(notes) != 2 {
		t.Fatalf("json: %v, %v", notes, err)
	}
}

func TestOpenFileDrivers(t *testing.T) {
	cases := []struct {
		driver string
		want   Source
	}{
		{"json", JSONSource{Path: "d"}},
		{"", JSONSource{Path: "d"}},
		{"YAML", YAMLSource{Path: "d"}},
	}
	for _, tc := range cases {
		src, closeFn, err := Open(context.Background(), config.DeckConfig{Driver: tc.driver, Path: "d"})
		if err != nil {
			t.Fatalf("Open(%q): %v", tc.driver, err)
		}
		closeFn()
		if src != tc.want {
			t.Fatalf("Open(%q) = %#v, want %#v", tc.driver, src, tc.want)
		}
	}
	if _, _, err := Open(context.Background(), config.DeckConfig{Driver: "tsv"}); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}
