package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jeoparty/internal/config"
	"jeoparty/internal/database"
	"jeoparty/internal/dataset"
	"jeoparty/internal/handlers"
	"jeoparty/internal/repository"
	"jeoparty/internal/service"
	"jeoparty/internal/spotify"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("database connection established", zap.String("type", cfg.DatabaseType))

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	library, defaults, err := dataset.Load(
		filepath.Join(cfg.DataPath, "questions.json"),
		filepath.Join(cfg.DataPath, "settings.json"),
	)
	if err != nil {
		logger.Fatal("failed to load question data", zap.Error(err))
	}

	logger.Info("question data loaded", zap.Int("categories", len(library.Categories())))

	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}

	// Repositories
	storeRepo := repository.NewStoreRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Services
	noticeService := service.NewNoticeService(logger)
	settingsService := service.NewSettingsService(storeRepo, defaults, logger)
	catalog := spotify.NewClient()
	playbackService := service.NewPlaybackService(storeRepo, noticeService, catalog, cfg.SpotifyClientID, cfg.SpotifyRedirectURL, logger)
	gameService := service.NewGameService(library, settingsService, gameRepo, logger)

	// The game starts playback; playback asks the game whether a finished
	// request still matches the open question.
	gameService.BindPlayer(playbackService)
	playbackService.BindCurrentCheck(gameService.IsCurrent)

	// Handlers
	gameHandler := handlers.NewGameHandler(library, gameService, settingsService, noticeService, playbackService, templates, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)
	spotifyHandler := handlers.NewSpotifyHandler(playbackService, logger)

	// Routes
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	mux.HandleFunc("GET /{$}", gameHandler.ShowBoard)
	mux.HandleFunc("POST /game/open/{id}", gameHandler.OpenQuestion)
	mux.HandleFunc("POST /game/hint", gameHandler.ToggleHint)
	mux.HandleFunc("POST /game/answer", gameHandler.ToggleAnswer)
	mux.HandleFunc("POST /game/award/{team}", gameHandler.AwardWinner)
	mux.HandleFunc("POST /game/noone", gameHandler.MarkNoOne)
	mux.HandleFunc("POST /game/wrong", gameHandler.WrongPick)
	mux.HandleFunc("POST /game/close", gameHandler.CloseQuestion)
	mux.HandleFunc("POST /game/picker/{team}", gameHandler.SetPicker)
	mux.HandleFunc("POST /game/reset", gameHandler.ResetGame)
	mux.HandleFunc("POST /settings", settingsHandler.Save)
	mux.HandleFunc("GET /auth/spotify/start", spotifyHandler.Start)
	mux.HandleFunc("GET /auth/spotify/callback", spotifyHandler.Callback)
	mux.HandleFunc("POST /auth/spotify/disconnect", spotifyHandler.Disconnect)

	handler := handlers.Logging(logger, mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("shutdown did not complete cleanly", zap.Error(err))
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}
	return template.ParseFiles(files...)
}
