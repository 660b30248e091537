package mondaymcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mondayErrors "github.com/krsjen/monday-mcp-server/pkg/errors"
	mcplog "github.com/krsjen/monday-mcp-server/pkg/log"
	"github.com/krsjen/monday-mcp-server/pkg/monday"
	"github.com/krsjen/monday-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type MCPServerConfig struct {
	// Version of the server
	Version string

	// Monday.com API key
	APIKey string

	// APIURL overrides the Monday.com GraphQL endpoint
	APIURL string

	// APIVersion is sent as the API-Version header when set
	APIVersion string

	// HTTPTimeout bounds a single API request
	HTTPTimeout time.Duration

	// Board every tool works against
	Board monday.BoardConfig

	// EnabledToolsets is a list of toolsets to enable
	EnabledToolsets []string

	// ReadOnly indicates if we should only offer read-only tools
	ReadOnly bool

	// Translator provides translated text for the server tooling
	Translator translations.TranslationHelperFunc

	// Transport replaces the HTTP transport used to reach Monday.com
	Transport http.RoundTripper
}

func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	if cfg.Translator == nil {
		cfg.Translator = translations.NullTranslationHelper
	}
	enabledToolsets := cfg.EnabledToolsets
	if len(enabledToolsets) == 0 {
		enabledToolsets = monday.DefaultTools
	}

	getClient := monday.NewClientFn(monday.ClientConfig{
		APIKey:     cfg.APIKey,
		APIURL:     cfg.APIURL,
		APIVersion: cfg.APIVersion,
		UserAgent:  fmt.Sprintf("monday-mcp-server/%s", cfg.Version),
		Timeout:    cfg.HTTPTimeout,
		Transport:  cfg.Transport,
	})

	mondayServer := server.NewMCPServer(
		"monday-mcp-server",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(collectAPIErrors),
	)

	tsg := monday.DefaultToolsetGroup(cfg.ReadOnly, getClient, cfg.Board.WithDefaults(), cfg.Translator)
	if err := tsg.EnableToolsets(enabledToolsets); err != nil {
		return nil, fmt.Errorf("failed to enable toolsets: %w", err)
	}
	tsg.RegisterAll(mondayServer)

	return mondayServer, nil
}

// collectAPIErrors gives every tool call a fresh error collector and logs
// what the Monday.com API reported once the call is done.
func collectAPIErrors(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = mondayErrors.ContextWithMondayErrors(ctx)
		result, err := next(ctx, request)

		apiErrors, _ := mondayErrors.GetMondayAPIErrors(ctx)
		for _, apiErr := range apiErrors {
			slog.Debug("Monday.com API error during tool call",
				"tool", request.Params.Name,
				"kind", apiErr.Kind.String(),
				"error", apiErr)
		}
		return result, err
	}
}

type StdioServerConfig struct {
	MCPServerConfig

	// ExportTranslations writes the translation keys in use to
	// monday-mcp-server-config.json on startup
	ExportTranslations bool

	// EnableCommandLogging indicates if we should log commands
	EnableCommandLogging bool

	// Path to the log file, logs are discarded when empty
	LogFilePath string

	// LogLevel is one of debug, info, warn or error
	LogLevel string
}

// RunStdioServer is not concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	// Create app context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logOutput := io.Discard
	if cfg.LogFilePath != "" {
		file, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = file.Close() }()
		logOutput = file
	}
	handler := slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: ParseLogLevel(cfg.LogLevel)})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	t, dumpTranslations := translations.TranslationHelper()
	cfg.Translator = t

	mondayServer, err := NewMCPServer(cfg.MCPServerConfig)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	stdioServer := server.NewStdioServer(mondayServer)
	stdioServer.SetErrorLogger(slog.NewLogLogger(handler.WithAttrs([]slog.Attr{slog.String("component", "stdioserver")}), slog.LevelError))

	if cfg.ExportTranslations {
		// Once server is initialized, all translations are loaded
		dumpTranslations()
	}

	// Start listening for messages
	errC := make(chan error, 1)
	go func() {
		in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)

		if cfg.EnableCommandLogging {
			loggedIO := mcplog.NewIOLogger(in, out, logger)
			in, out = loggedIO, loggedIO
		}

		errC <- stdioServer.Listen(ctx, in, out)
	}()

	// Output monday-mcp-server string
	_, _ = fmt.Fprintf(os.Stderr, "Monday.com MCP Server running on stdio\n")
	if cfg.APIKey == "" {
		logger.Warn("MONDAY_API_KEY is not set, tool calls will fail until it is configured")
	}
	if cfg.Board.BoardID == "" {
		logger.Warn("MONDAY_TASKS_BOARD_ID is not set, tool calls will fail until it is configured")
	}
	logger.Info("server started", "version", cfg.Version, "read_only", cfg.ReadOnly, "toolsets", cfg.EnabledToolsets)

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("error running server: %w", err)
		}
	}

	return nil
}

// ParseLogLevel maps a level name to a slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
