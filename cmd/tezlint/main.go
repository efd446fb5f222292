package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tezlint/tezlint/internal/config"
	"github.com/tezlint/tezlint/internal/mcp"
	"github.com/tezlint/tezlint/internal/report"
	"github.com/tezlint/tezlint/internal/service"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		// Check mode logs to stderr so the report owns stdout
		log.SetOutput(os.Stderr)
		if cfg.IsDebug() {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	}
}

// runStdioMode handles MCP stdio mode execution
func runStdioMode(ctx context.Context, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	// We should exit cleanly when stdin is closed or we get an error
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runCheckMode scans one manuscript, prints the report, and exits
// non-zero when any finding was produced.
func runCheckMode(ctx context.Context, cfg *config.Config, svc *service.Service) {
	result, err := svc.ScanFile(ctx, service.ScanFileRequest{Path: cfg.ManuscriptPath})
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	rendered, err := report.Render(result.Result, cfg.ReportFormat)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Println(rendered)

	if result.Result.Summary.CriticalCount > 0 {
		os.Exit(2)
	}
	if result.Result.Summary.FormatCount > 0 {
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsCheckMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	svc := service.NewService(cfg.MaxFileSize)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-signalCh
		if cfg.IsDebug() {
			log.Printf("Received signal: %s", sig)
		}
		cancel()
	}()

	if cfg.IsCheckMode() {
		runCheckMode(ctx, cfg, svc)
		return
	}

	server, err := mcp.NewServer(cfg, svc)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	runStdioMode(ctx, server)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("tezlint - Thesis Manuscript Checker\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
