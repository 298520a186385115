// --- quizdeck/handlers/api_handlers.go ---
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizdeck/middleware"
	"quizdeck/models"
	"quizdeck/quiz"
	"quizdeck/sessions"
	"quizdeck/views"
)

// QuizPage starts a fresh quiz session and renders its first question.
// GET /
func QuizPage(store *sessions.Store, issuer *sessions.Issuer, deckName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := store.Create(c.Request.Context(), deckName)
		if err != nil {
			log.Printf("Error starting quiz session: %v", err)
			c.HTML(http.StatusServiceUnavailable, views.QuizTemplate, views.ErrorData(deckName, "Deck not loaded. Check the server log."))
			return
		}
		token, err := issuer.Issue(entry.ID)
		if err != nil {
			log.Printf("Error issuing session token: %v", err)
			c.HTML(http.StatusInternalServerError, views.QuizTemplate, views.ErrorData(deckName, "Could not start a session."))
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)

		renderSession(c, store, entry.ID, views.QuizTemplate)
	}
}

// QuizFragment renders the question area and overlay of the caller's session.
// GET /fragment
func QuizFragment(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderSession(c, store, c.GetString(middleware.SessionIDKey), views.FragmentTemplate)
	}
}

// renderSession renders tmpl with what session id currently shows.
func renderSession(c *gin.Context, store *sessions.Store, id, tmpl string) {
	var data views.PageData
	err := store.Do(id, func(e *sessions.Entry) error {
		data = e.Page.Data()
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.HTML(http.StatusOK, tmpl, data)
}

// GetState returns what the session currently shows.
// GET /api/state
func GetState(store *sessions.Store) gin.HandlerFunc {
	return sessionAction(store, func(_ context.Context, _ *quiz.Session) bool { return true })
}

// SubmitAnswer locks in an option for a question.
// POST /api/answer
func SubmitAnswer(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionAction(store, func(_ context.Context, s *quiz.Session) bool {
			return s.SubmitAnswer(req.Index, req.Option)
		})(c)
	}
}

// Move navigates to the previous or next question.
// POST /api/move
func Move(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionAction(store, func(_ context.Context, s *quiz.Session) bool {
			return s.Move(req.Direction)
		})(c)
	}
}

// HandleKey dispatches a keydown event.
// POST /api/key
func HandleKey(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.KeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionAction(store, func(ctx context.Context, s *quiz.Session) bool {
			return s.HandleKey(ctx, quiz.Key{Name: req.Key, Alt: req.Alt})
		})(c)
	}
}

// CopyCurrentID exports the displayed question's note id.
// POST /api/copy/current
func CopyCurrentID(store *sessions.Store) gin.HandlerFunc {
	return sessionAction(store, func(ctx context.Context, s *quiz.Session) bool {
		return s.CopyCurrentID(ctx) != ""
	})
}

// CopyIncorrectIDs exports the note ids of every wrong answer.
// POST /api/copy/incorrect
func CopyIncorrectIDs(store *sessions.Store) gin.HandlerFunc {
	return sessionAction(store, func(ctx context.Context, s *quiz.Session) bool {
		return s.CopyIncorrectIDs(ctx) != ""
	})
}

// ToggleOverlay opens or closes the scoreboard overlay.
// POST /api/overlay/toggle
func ToggleOverlay(store *sessions.Store) gin.HandlerFunc {
	return sessionAction(store, func(_ context.Context, s *quiz.Session) bool {
		s.ToggleOverlay()
		return true
	})
}

// OverlayClick reports a pointer click to the session.
// POST /api/overlay/click
func OverlayClick(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OverlayClickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sessionAction(store, func(ctx context.Context, s *quiz.Session) bool {
			s.Click(ctx, quiz.ClickTarget(req.Target))
			return true
		})(c)
	}
}

// Health reports liveness and the number of open sessions.
// GET /healthz
func Health(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": store.Len()})
	}
}

// sessionAction runs fn against the caller's session and answers with the
// resulting state.
func sessionAction(store *sessions.Store, fn func(context.Context, *quiz.Session) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resp models.StateResponse
		err := store.Do(c.GetString(middleware.SessionIDKey), func(e *sessions.Entry) error {
			accepted := fn(c.Request.Context(), e.Session)
			resp = snapshot(e)
			resp.Accepted = accepted
			return nil
		})
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func snapshot(e *sessions.Entry) models.StateResponse {
	d := e.Page.Data()
	tags := d.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return models.StateResponse{
		Question:   d.Question,
		Tags:       tags,
		Tally:      e.Session.Tally(),
		Overlay:    e.Session.Overlay().String(),
		Scoreboard: d.Scoreboard,
		Copied:     e.Outbox.Take(),
	}
}

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, sessions.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session expired, reload the page"})
		return
	}
	log.Printf("Error handling session request: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
}
