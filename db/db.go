// --- quizdeck/db/db.go ---
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdeck/models"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by this package.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// InitDB initializes the PostgreSQL database connection pool
func InitDB(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL database!")
	return pool, nil
}

// CreateSchema sets up the deck tables.
func CreateSchema(ctx context.Context, q Querier) error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS notes (
		deck VARCHAR(255) NOT NULL,
		position INT NOT NULL,
		note_id VARCHAR(64) NOT NULL,
		question TEXT NOT NULL,
		op1 TEXT NOT NULL,
		op2 TEXT NOT NULL,
		op3 TEXT NOT NULL,
		op4 TEXT NOT NULL,
		answer VARCHAR(8) NOT NULL,
		extra TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		PRIMARY KEY (deck, position),
		UNIQUE (deck, note_id)
	);

	CREATE TABLE IF NOT EXISTS import_events (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		deck VARCHAR(255) NOT NULL,
		source TEXT NOT NULL, -- file the notes were read from
		action VARCHAR(64) NOT NULL,
		notes TEXT
	);
	`
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}
	return nil
}

// noteRow mirrors one row of the notes table.
type noteRow struct {
	NoteID   string   `db:"note_id"`
	Question string   `db:"question"`
	OP1      string   `db:"op1"`
	OP2      string   `db:"op2"`
	OP3      string   `db:"op3"`
	OP4      string   `db:"op4"`
	Answer   string   `db:"answer"`
	Extra    string   `db:"extra"`
	Tags     []string `db:"tags"`
}

// LoadNotes returns the notes of deck in position order.
func LoadNotes(ctx context.Context, q Querier, deck string) ([]models.Note, error) {
	rows, err := q.Query(ctx, `
		SELECT note_id, question, op1, op2, op3, op4, answer, extra, tags
		FROM notes
		WHERE deck = $1
		ORDER BY position
	`, deck)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for %s: %w", deck, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[noteRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes for %s: %w", deck, err)
	}

	notes := make([]models.Note, len(collected))
	for i, r := range collected {
		notes[i] = models.Note{
			NoteID:   models.NoteID(r.NoteID),
			Question: r.Question,
			OP1:      r.OP1,
			OP2:      r.OP2,
			OP3:      r.OP3,
			OP4:      r.OP4,
			Answer:   r.Answer,
			Extra:    r.Extra,
			Tags:     r.Tags,
		}
	}
	return notes, nil
}

// ReplaceNotes swaps the stored notes of deck for notes, keeping their order.
// Run it inside a transaction.
func ReplaceNotes(ctx context.Context, q Querier, deck string, notes []models.Note) error {
	if _, err := q.Exec(ctx, `DELETE FROM notes WHERE deck = $1`, deck); err != nil {
		return fmt.Errorf("failed to clear notes for %s: %w", deck, err)
	}
	for i, n := range notes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		_, err := q.Exec(ctx, `
			INSERT INTO notes (deck, position, note_id, question, op1, op2, op3, op4, answer, extra, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, deck, i, string(n.NoteID), n.Question, n.OP1, n.OP2, n.OP3, n.OP4, n.Answer, n.Extra, tags)
		if err != nil {
			return fmt.Errorf("failed to insert note %s (position %d): %w", n.NoteID, i, err)
		}
	}
	return nil
}

// ListDecks returns the names of every stored deck.
func ListDecks(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.Query(ctx, "SELECT DISTINCT deck FROM notes ORDER BY deck")
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	decks, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan deck name: %w", err)
	}
	return decks, nil
}

// LogImportEvent adds an entry to the import_events table
func LogImportEvent(ctx context.Context, q Querier, deck, source, action, notes string) {
	_, err := q.Exec(ctx, `
		INSERT INTO import_events (deck, source, action, notes)
		VALUES ($1, $2, $3, $4)
	`, deck, source, action, notes)
	if err != nil {
		log.Printf("ERROR: Failed to log import event to database: %v. Event: %s on %s", err, action, deck)
	}
}
