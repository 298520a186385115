// --- quizdeck/handlers/admin_handlers.go ---
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizdeck/db"
	"quizdeck/deck"
	"quizdeck/ingestion"
	"quizdeck/middleware"
)

// AdminListDecks lists the decks stored in the database.
// GET /admin/decks
func AdminListDecks(pool db.Querier) gin.HandlerFunc {
	return func(c *gin.Context) {
		decks, err := db.ListDecks(c.Request.Context(), pool)
		if err != nil {
			log.Printf("Error listing decks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve decks"})
			return
		}
		if decks == nil {
			decks = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"decks": decks})
	}
}

// TriggerImport reloads the configured deck file into the database.
// POST /admin/import
func TriggerImport(pool ingestion.Pool, deckName, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No import path configured"})
			return
		}
		actor := c.GetString(middleware.SubjectKey)
		log.Printf("Admin %s triggered import of %s into %q", actor, path, deckName)
		n, err := ingestion.ImportDeck(c.Request.Context(), pool, deckName, path)
		if err != nil {
			log.Printf("Error importing deck %q: %v", deckName, err)
			if errors.Is(err, deck.ErrMalformedNote) || errors.Is(err, deck.ErrEmptyDeck) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import deck"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deck": deckName, "imported": n})
	}
}
