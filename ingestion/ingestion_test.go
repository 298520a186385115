package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quizdeck/deck"
)

// recordingPool records statements and import events. Without a tx it
// refuses to open transactions.
type recordingPool struct {
	execs   []string
	actions []string
	begins  int
	tx      *recordingTx
}

func (p *recordingPool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execs = append(p.execs, sql)
	if strings.Contains(sql, "import_events") {
		p.actions = append(p.actions, args[2].(string))
	}
	return pgconn.CommandTag{}, nil
}

func (p *recordingPool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (p *recordingPool) Begin(context.Context) (pgx.Tx, error) {
	p.begins++
	if p.tx == nil {
		return nil, errors.New("database is read-only")
	}
	return p.tx, nil
}

// recordingTx counts statements and fails the failAt-th one (1-based, 0 never).
type recordingTx struct {
	pgx.Tx
	execs      int
	failAt     int
	committed  bool
	rolledBack bool
}

func (tx *recordingTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	tx.execs++
	if tx.execs == tx.failAt {
		return pgconn.CommandTag{}, errors.New("duplicate key value violates unique constraint")
	}
	return pgconn.CommandTag{}, nil
}

func (tx *recordingTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *recordingTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

const twoNotes = `[
	{"noteId": 1, "Question": "q1", "OP1": "a", "OP2": "b", "OP3": "c", "OP4": "d", "Answer": "2", "tags": ["Hard"]},
	{"noteId": 2, "Question": "q2", "OP1": "a", "OP2": "b", "OP3": "c", "OP4": "d", "Answer": "4", "tags": []}
]`

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportDeckRejectsMalformedFile(t *testing.T) {
	pool := &recordingPool{}
	path := writeDeck(t, `[{"noteId": 1, "Question": "q", "OP1": "a", "OP2": "b", "OP3": "c", "OP4": "d", "Answer": "7", "tags": []}]`)

	n, err := ImportDeck(context.Background(), pool, "Deck", path)
	if !errors.Is(err, deck.ErrMalformedNote) || n != 0 {
		t.Fatalf("ImportDeck = %d, %v; want ErrMalformedNote", n, err)
	}
	if pool.begins != 0 {
		t.Fatalf("stored deck must not be touched")
	}
	if len(pool.execs) != 1 || !strings.Contains(pool.execs[0], "import_events") {
		t.Fatalf("expected one import event, got %v", pool.execs)
	}
}

func TestImportDeckMissingFile(t *testing.T) {
	pool := &recordingPool{}
	_, err := ImportDeck(context.Background(), pool, "Deck", filepath.Join(t.TempDir(), "gone.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestImportDeckBeginFailure(t *testing.T) {
	pool := &recordingPool{}
	path := writeDeck(t, `[{"noteId": 1, "Question": "q", "OP1": "a", "OP2": "b", "OP3": "c", "OP4": "d", "Answer": "2", "tags": ["Hard"]}]`)
	if _, err := ImportDeck(context.Background(), pool, "Deck", path); err == nil {
		t.Fatalf("begin failure must be reported")
	}
	if pool.begins != 1 {
		t.Fatalf("begins = %d", pool.begins)
	}
}

func TestImportDeckCommits(t *testing.T) {
	tx := &recordingTx{}
	pool := &recordingPool{tx: tx}
	n, err := ImportDeck(context.Background(), pool, "Deck", writeDeck(t, twoNotes))
	if err != nil || n != 2 {
		t.Fatalf("ImportDeck = %d, %v; want 2", n, err)
	}
	if tx.execs != 3 {
		t.Fatalf("statements in tx = %d, want delete + 2 inserts", tx.execs)
	}
	if !tx.committed || tx.rolledBack {
		t.Fatalf("committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(pool.actions) != 1 || pool.actions[0] != "import_success" {
		t.Fatalf("events = %v", pool.actions)
	}
}

func TestImportDeckRollsBackFailedInsert(t *testing.T) {
	tx := &recordingTx{failAt: 3}
	pool := &recordingPool{tx: tx}
	n, err := ImportDeck(context.Background(), pool, "Deck", writeDeck(t, twoNotes))
	if err == nil || n != 0 {
		t.Fatalf("ImportDeck = %d, %v; want an error", n, err)
	}
	if !strings.Contains(err.Error(), "note 2") {
		t.Fatalf("err = %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Fatalf("committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(pool.actions) != 1 || pool.actions[0] != "import_failed" {
		t.Fatalf("events = %v", pool.actions)
	}
}
