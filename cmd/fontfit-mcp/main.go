package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fontfit-mcp/internal/config"
	"github.com/ironsheep/fontfit-mcp/internal/logging"
	"github.com/ironsheep/fontfit-mcp/internal/pipeline"
	"github.com/ironsheep/fontfit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("fontfit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("fontfit-mcp - MCP server that measures font sizes in UI screenshots")
			fmt.Println()
			fmt.Println("Usage: fontfit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  FONTFIT_LOG_LEVEL=debug      Log level (default info)")
			fmt.Println("  FONTFIT_FONT_PATH=<ttf|otf>  Font used for rendering (default Go Regular)")
			fmt.Println("  FONTFIT_OUTPUT_DIR=outputs   Where images and results are written")
			fmt.Println("  FONTFIT_TARGET_WIDTH=750     Normalized screenshot width")
			fmt.Println("  FONTFIT_WORKERS=1            Concurrent region fits per task")
			fmt.Println("  FONTFIT_OCR_LANGUAGE=eng     Tesseract language")
			fmt.Println("  FONTFIT_REDIS_URL=           Store results in Redis instead of files")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// stdout is for MCP protocol
	log := logging.New(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("fontfit MCP server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeFn, err := pipeline.Build(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	server.Version = Version
	srv := server.New(svc, log)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("server error")
		_ = closeFn()
		os.Exit(1)
	}
}
