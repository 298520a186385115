package main
import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"quizdeck/clipboard"
	"quizdeck/config"
	"quizdeck/deck"
	"quizdeck/handlers"
	"quizdeck/ingestion"
	"quizdeck/quiz"
	"quizdeck/sessions"
	"quizdeck/tui"
)
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// The terminal owns the screen in tui mode, so the log goes to a file
	if cfg.Mode == "tui" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Error opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	source, closeSource, err := deck.Open(ctx, cfg.Deck)
	if err != nil {
		log.Fatalf("Error opening deck source: %v", err)
	}
	defer closeSource()
	var pool *pgxpool.Pool
	if ps, ok := source.(deck.PostgresSource); ok {
		if p, ok := ps.Pool.(*pgxpool.Pool); ok {
			pool = p
			startImports(ctx, pool, cfg.Deck)
		}
	}
	tags := quiz.TagFilter{
		Excluded:       cfg.Tags.Excluded,
		ExcludedPrefix: cfg.Tags.ExcludedPrefix,
		Emphasis:       cfg.Tags.Emphasis,
	}
	switch cfg.Mode {
	case "tui":
		err = runTUI(ctx, source, cfg, tags)
	case "web", "":
		err = runWeb(ctx, source, pool, cfg, tags)
	default:
		err = fmt.Errorf("unknown mode %q (want web or tui)", cfg.Mode)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		stop()
		closeSource()
		os.Exit(1)
	}
}
// startImports copies the configured deck file into postgres once, then on
// every IMPORT_INTERVAL tick.
func startImports(ctx context.Context, pool *pgxpool.Pool, deckCfg config.DeckConfig) {
	if deckCfg.ImportPath == "" {
		return
	}
	importOnce := func() {
		n, err := ingestion.ImportDeck(ctx, pool, deckCfg.Name, deckCfg.ImportPath)
		if err != nil {
			log.Printf("Error importing deck %q: %v", deckCfg.Name, err)
			return
		}
		log.Printf("Successfully imported %d notes into %q", n, deckCfg.Name)
	}
	importOnce()
	if deckCfg.ImportInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(deckCfg.ImportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Println("Running scheduled deck import...")
				importOnce()
			}
		}
	}()
}
func runTUI(ctx context.Context, source deck.Source, cfg *config.Config, tags quiz.TagFilter) error {
	copier := clipboard.NewCopier(clipboard.SystemWriter{}, clipboard.NewTerminalSurface("/dev/tty"), log.Default())
	err := tui.Run(ctx, source, tui.Options{
		DeckName:  cfg.Deck.Name,
		Clipboard: copier,
		TagFilter: tags,
		Logger:    log.Default(),
	})
	if err != nil {
		return fmt.Errorf("quiz could not start, see %s: %w", cfg.LogFile, err)
	}
	return nil
}
func runWeb(ctx context.Context, source deck.Source, pool *pgxpool.Pool, cfg *config.Config, tags quiz.TagFilter) error {
	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	store := sessions.NewStore(source, cfg.Session.TTL, log.Default(), quiz.WithTagFilter(tags))
	store.SetMaxEntries(cfg.Session.MaxSessions)
	issuer := sessions.NewIssuer(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.TTL)
	rc := handlers.RouterConfig{
		Store:      store,
		Issuer:     issuer,
		DeckName:   cfg.Deck.Name,
		ImportPath: cfg.Deck.ImportPath,
	}
	if pool != nil {
		rc.Pool = pool
	}
	router := handlers.NewRouter(rc)
	// Drop idle sessions in the background
	if cfg.Session.SweepInterval > 0 {
		go sweepSessions(ctx, store, cfg.Session.SweepInterval)
	}
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}
	// Goroutine to gracefully shut down the server
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}()
	log.Printf("QUIZDECK Server starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server startup error: %w", err)
	}
	log.Println("Server exited gracefully.")
	return nil
}
func sweepSessions(ctx context.Context, store *sessions.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Sweep(now); n > 0 {
				log.Printf("Swept %d idle sessions", n)
			}
		}
	}
}
