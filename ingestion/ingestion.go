// --- quizdeck/ingestion/ingestion.go ---
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"quizdeck/db"
	"quizdeck/deck"
)

const sourceName = "ingestion"

// Pool is what an import needs from the database; *pgxpool.Pool satisfies it.
type Pool interface {
	db.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImportDeck reads the deck file at path, validates every note and replaces
// the stored notes of deckName with it in one transaction. A file with any
// malformed note leaves the stored deck untouched. It returns the number of
// notes imported.
func ImportDeck(ctx context.Context, pool Pool, deckName, path string) (int, error) {
	notes, err := deck.ReadFile(path)
	if err != nil {
		db.LogImportEvent(ctx, pool, deckName, path, "read_failed", err.Error())
		return 0, err
	}
	if _, err := deck.Convert(notes); err != nil {
		db.LogImportEvent(ctx, pool, deckName, path, "validation_failed", err.Error())
		return 0, fmt.Errorf("deck file %s rejected: %w", path, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback on error

	if err := db.ReplaceNotes(ctx, tx, deckName, notes); err != nil {
		db.LogImportEvent(ctx, pool, deckName, path, "import_failed", err.Error())
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import of %s: %w", deckName, err)
	}

	log.Printf("[%s] Imported %d notes into deck %q from %s", sourceName, len(notes), deckName, path)
	db.LogImportEvent(ctx, pool, deckName, path, "import_success", fmt.Sprintf("%d notes", len(notes)))
	return len(notes), nil
}
