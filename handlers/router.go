package handlers

import (
	"github.com/gin-gonic/gin"

	"quizdeck/ingestion"
	"quizdeck/middleware"
	"quizdeck/sessions"
	"quizdeck/views"
)

// RouterConfig carries what the routes need.
type RouterConfig struct {
	Store      *sessions.Store
	Issuer     *sessions.Issuer
	DeckName   string
	Pool       ingestion.Pool // nil unless the deck lives in postgres
	ImportPath string
}

// NewRouter wires the quiz page, its session API and, with a database, the admin routes.
func NewRouter(rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.HTMLRender = views.NewRenderer()

	router.GET("/", QuizPage(rc.Store, rc.Issuer, rc.DeckName))
	router.GET("/healthz", Health(rc.Store))

	sessionMiddleware := middleware.SessionMiddleware(rc.Issuer)
	router.GET("/fragment", sessionMiddleware, QuizFragment(rc.Store))

	api := router.Group("/api")
	api.Use(sessionMiddleware)
	{
		api.GET("/state", GetState(rc.Store))
		api.POST("/answer", SubmitAnswer(rc.Store))
		api.POST("/move", Move(rc.Store))
		api.POST("/key", HandleKey(rc.Store))
		api.POST("/copy/current", CopyCurrentID(rc.Store))
		api.POST("/copy/incorrect", CopyIncorrectIDs(rc.Store))
		api.POST("/overlay/toggle", ToggleOverlay(rc.Store))
		api.POST("/overlay/click", OverlayClick(rc.Store))
	}

	if rc.Pool != nil {
		admin := router.Group("/admin")
		admin.Use(middleware.AuthMiddleware(rc.Issuer))
		admin.Use(middleware.RoleCheckMiddleware([]string{"admin"}))
		{
			admin.GET("/decks", AdminListDecks(rc.Pool))
			admin.POST("/import", TriggerImport(rc.Pool, rc.DeckName, rc.ImportPath))
		}
	}
	return router
}
