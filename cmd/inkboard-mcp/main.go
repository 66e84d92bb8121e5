package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/inkboard-mcp/internal/config"
	"github.com/ironsheep/inkboard-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("inkboard-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()

	// stdout carries MCP frames, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting inkboard-mcp",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit,
		"idle_delay", cfg.IdleDelay,
		"min_region_size", cfg.MinRegionSize,
		"grouping_distance", cfg.GroupingDistance)

	srv, err := server.New(*cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		srv.Close()
		os.Exit(1)
	}
	logger.Info("stdin closed, shutting down")
}

func printHelp() {
	fmt.Println("inkboard-mcp - MCP server for a whiteboard drawing engine")
	fmt.Println()
	fmt.Println("Usage: inkboard-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  INKBOARD_LOG_LEVEL=info           debug, info, warn or error")
	fmt.Println("  INKBOARD_IDLE_DELAY=1500ms        Quiet time before automatic region detection (0 disables)")
	fmt.Println("  INKBOARD_MIN_REGION_SIZE=100      Smallest ink blob, in pixels, kept as a region")
	fmt.Println("  INKBOARD_GROUPING_DISTANCE=80     Largest gap, in pixels, merged into one region")
	fmt.Println("  INKBOARD_DILATE_RADIUS=0          Grow ink before grouping")
	fmt.Println("  INKBOARD_INK_COLOR=#000000        Stroke color for renders")
	fmt.Println("  INKBOARD_PEN_SIZE=4               Pencil stroke width")
	fmt.Println("  INKBOARD_OCR_LANGUAGE=eng         Default Tesseract language")
	fmt.Println("  INKBOARD_RASTER_PADDING=16        Margin around rendered drawings")
	fmt.Println("  INKBOARD_MAX_RASTER_PIXELS=25000000  Largest raster the board will allocate")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}
