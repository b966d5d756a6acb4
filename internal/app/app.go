// Package app wires configuration, logging and the application entry
// points: the bot loop and the offline dictionary import.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbalak/kanjibot/internal/adapter/imgur"
	"github.com/vbalak/kanjibot/internal/adapter/postgres"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/importer"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/kanji"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/word"
	"github.com/vbalak/kanjibot/internal/adapter/reddit"
	"github.com/vbalak/kanjibot/internal/app/seeder"
	"github.com/vbalak/kanjibot/internal/config"
	"github.com/vbalak/kanjibot/internal/imaging"
	"github.com/vbalak/kanjibot/internal/render"
	"github.com/vbalak/kanjibot/internal/service/reply"
)

// RunBot starts the reply loop: poll the unread inbox, answer summons,
// mark handled messages read. Blocks until the context is cancelled.
func RunBot(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting kanjibot",
		slog.String("version", BuildVersion()),
		slog.String("account", cfg.Reddit.Account),
		slog.Duration("poll_interval", cfg.Reddit.PollInterval),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	kanjiRepo := kanji.New(pool)
	wordRepo := word.New(pool)

	images, err := buildImageHost(cfg, logger)
	if err != nil {
		return err
	}

	renderer := render.New(logger, kanjiRepo, wordRepo, images)
	service := reply.NewService(logger, renderer, wordRepo, cfg.Reddit.Account, cfg.Bot.Footer)

	client := reddit.NewClient(ctx, reddit.Credentials{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		UserAgent:    cfg.Reddit.UserAgent,
	}, logger)

	poller := reddit.NewPoller(logger, client, service, cfg.Reddit.PollInterval)
	return poller.Run(ctx)
}

// RunImport creates the schema and streams the dictionary source files
// into the database. Meant to be run once against an empty database.
func RunImport(ctx context.Context, phases []string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting dictionary import",
		slog.String("version", BuildVersion()),
		slog.String("data_dir", cfg.Data.Dir),
		slog.Bool("dry_run", dryRun),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if !dryRun {
		if err := postgres.InitSchema(ctx, pool); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	pipeline := seeder.NewPipeline(logger, importer.New(pool), seeder.Config{
		RadicalsPath:  cfg.Data.RadicalsPath(),
		KanjidicPath:  cfg.Data.KanjidicPath(),
		KradfilePath:  cfg.Data.KradfilePath(),
		Kradfile2Path: cfg.Data.Kradfile2Path(),
		JMdictPath:    cfg.Data.JMdictPath(),
		DryRun:        dryRun,
	})

	if err := pipeline.Run(ctx, phases); err != nil {
		return err
	}
	if pipeline.HasErrors() {
		return fmt.Errorf("import completed with errors")
	}

	return nil
}

// buildImageHost assembles the image capability from whatever is
// configured: no imgur client id disables images entirely, no fonts
// disables only the preview.
func buildImageHost(cfg *config.Config, logger *slog.Logger) (render.ImageHost, error) {
	if cfg.Imgur.ClientID == "" {
		logger.Info("image hosting disabled, no imgur client id")
		return imaging.Disabled{}, nil
	}

	strokes := imaging.NewStrokeOrderAssets(cfg.Data.StrokeDir())
	upload := imgur.New(cfg.Imgur.ClientID, logger)

	if len(cfg.Data.FontPaths) == 0 {
		logger.Info("preview images disabled, no fonts configured")
		return imaging.NewHost(logger, nil, strokes, upload), nil
	}

	preview, err := imaging.NewPreviewRenderer(cfg.Data.FontPaths)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	return imaging.NewHost(logger, preview, strokes, upload), nil
}
