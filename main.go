package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "portfolio",
		Usage: "Serve the portfolio site",
		Flags: configFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := configFromCLI(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
}

func run(ctx context.Context, cfg Config) error {
	log, logCloser, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log: %v\n", err)
		}
	}()
	slog.SetDefault(log)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	content, err := loadContent(cfg)
	if err != nil {
		return err
	}

	router, err := newRouter(cfg, content, NewFlashStore(cfg.FlashTTL), log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	return serve(ctx, cfg.Addr(), router, log)
}

func loadContent(cfg Config) (ContentProvider, error) {
	if cfg.ContentFile == "" {
		return DefaultContent(), nil
	}
	content, err := LoadContentFile(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	return content, nil
}
