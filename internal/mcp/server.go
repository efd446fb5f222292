package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tezlint/tezlint/internal/config"
	"github.com/tezlint/tezlint/internal/descriptions"
	"github.com/tezlint/tezlint/internal/report"
	"github.com/tezlint/tezlint/internal/service"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	svc       *service.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *service.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		svc:       svc,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	scanFileTool := mcp.NewTool(
		"thesis_scan_file",
		mcp.WithDescription(descriptions.ThesisScanFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the manuscript file (.docx or .pdf)"),
		),
		mcp.WithString("format",
			mcp.Description("Report format: 'text' (default) or 'json'"),
		),
	)
	s.mcpServer.AddTool(scanFileTool, s.handleScanFile)

	classifyTextTool := mcp.NewTool(
		"thesis_classify_text",
		mcp.WithDescription(descriptions.ThesisClassifyTextDescription),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Paragraph texts, one per line, in manuscript order"),
		),
	)
	s.mcpServer.AddTool(classifyTextTool, s.handleClassifyText)

	validateFileTool := mcp.NewTool(
		"thesis_validate_file",
		mcp.WithDescription(descriptions.ThesisValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the manuscript file (.docx or .pdf)"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	serverInfoTool := mcp.NewTool(
		"thesis_server_info",
		mcp.WithDescription(descriptions.ThesisServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleScanFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := s.config.ReportFormat
	if f, ok := request.GetArguments()["format"].(string); ok && f != "" {
		format = f
	}

	result, err := s.svc.ScanFile(ctx, service.ScanFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rendered, err := report.Render(result.Result, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Scanned %s manuscript: %s\n\n", result.Format, result.Path)
	responseText += rendered
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleClassifyText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.ClassifyText(service.ClassifyTextRequest{Lines: splitLines(text)})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatClassifyTextResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.ValidateFile(service.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Manuscript file %s is a valid %s file", result.Path, result.Format)
		if result.Format == "pdf" {
			responseText += fmt.Sprintf(" (PDF %s, %d pages)", result.PDFVersion, result.Pages)
		}
	} else {
		responseText = fmt.Sprintf("Validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.svc.ServerInfo(s.config.ServerName, s.config.Version)
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// Formatting methods
func (s *Server) formatClassifyTextResult(result *service.ClassifyTextResult) string {
	text := fmt.Sprintf("Classified %d paragraph(s)\n\n", len(result.Paragraphs))
	for _, p := range result.Paragraphs {
		text += fmt.Sprintf("%d. [%s / %s] %s\n", p.Index+1, p.Zone, p.Type, truncate(p.Text, 80))
	}
	text += fmt.Sprintf("\nFinal zone: %s\n", result.FinalZone)
	return text
}

func (s *Server) formatServerInfoResult(result *service.ServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Max file size: %d MB\n", result.MaxFileSize/(1024*1024))

	text += "\nSupported formats:\n"
	for _, f := range result.SupportedFormats {
		text += fmt.Sprintf("  • %s\n", f)
	}

	text += "\nClassification rules (tried in order, first match wins):\n"
	for i, name := range result.RuleNames {
		text += fmt.Sprintf("  %d. %s\n", i+1, name)
	}

	text += "\nAvailable tools: thesis_scan_file, thesis_classify_text, thesis_validate_file, thesis_server_info\n"
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting thesis check MCP server in stdio mode")
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// truncate shortens a string on rune boundaries for display.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
