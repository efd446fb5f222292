package mcp

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tezlint/tezlint/internal/config"
	"github.com/tezlint/tezlint/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:         "stdio",
		ReportFormat: "text",
		Version:      "1.0.0",
		ServerName:   "test-server",
		LogLevel:     "info",
		MaxFileSize:  1024 * 1024,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(testConfig(), service.NewService(1024*1024))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	var sb strings.Builder
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			sb.WriteString(textContent.Text)
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			sb.WriteString(textContentPtr.Text)
		}
	}
	return sb.String()
}

func writeTestDOCX(t *testing.T, paragraphs []string) string {
	t.Helper()

	body := ""
	for _, p := range paragraphs {
		body += "<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>"
	}
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + body + `</w:body>
</w:document>`

	path := filepath.Join(t.TempDir(), "thesis.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("failed to write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return path
}

func TestNewServer(t *testing.T) {
	svc := service.NewService(1024 * 1024)
	cfg := testConfig()

	server, err := NewServer(cfg, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("server should not be nil")
	}
	if server.config != cfg {
		t.Error("server config not set correctly")
	}
	if server.svc != svc {
		t.Error("server service not set correctly")
	}
	if server.mcpServer == nil {
		t.Error("mcpServer should be initialized")
	}
}

func TestNewServerNilGuards(t *testing.T) {
	if _, err := NewServer(nil, service.NewService(1024)); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewServer(testConfig(), nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestHandleScanFile(t *testing.T) {
	server := newTestServer(t)
	path := writeTestDOCX(t, []string{
		"GİRİŞ",
		"Bu araştırmada nitel yöntemler kullanılmıştır ve bulgular tartışılmıştır.",
	})

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": path,
			},
		},
	}

	result, err := server.handleScanFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handler returned error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Scanned docx manuscript") {
		t.Errorf("result missing scan header: %s", text)
	}
	if !strings.Contains(text, "Paragraphs scanned: 2") {
		t.Errorf("result missing paragraph count: %s", text)
	}
}

func TestHandleScanFileJSONFormat(t *testing.T) {
	server := newTestServer(t)
	path := writeTestDOCX(t, []string{"GİRİŞ"})

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path":   path,
				"format": "json",
			},
		},
	}

	result, err := server.handleScanFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"total_paragraphs": 1`) {
		t.Errorf("result should contain JSON summary: %s", text)
	}
}

func TestHandleScanFileMissingPath(t *testing.T) {
	server := newTestServer(t)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleScanFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler should return error result, not error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing path argument")
	}
}

func TestHandleClassifyText(t *testing.T) {
	server := newTestServer(t)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"text": "ÖZET\nGİRİŞ\n",
			},
		},
	}

	result, err := server.handleClassifyText(context.Background(), request)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Classified 2 paragraph(s)") {
		t.Errorf("unexpected classify output: %s", text)
	}
	if !strings.Contains(text, "main_heading") {
		t.Errorf("output missing paragraph types: %s", text)
	}
	if !strings.Contains(text, "Final zone: body") {
		t.Errorf("output missing final zone: %s", text)
	}
}

func TestHandleValidateFile(t *testing.T) {
	server := newTestServer(t)
	path := writeTestDOCX(t, []string{"GİRİŞ"})

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": path,
			},
		},
	}

	result, err := server.handleValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "is a valid docx file") {
		t.Errorf("unexpected validate output: %s", text)
	}
}

func TestHandleValidateFileInvalid(t *testing.T) {
	server := newTestServer(t)
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": path,
			},
		},
	}

	result, err := server.handleValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Validation failed") {
		t.Errorf("unexpected validate output: %s", text)
	}
}

func TestHandleServerInfo(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleServerInfo(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)

	for _, want := range []string{
		"test-server v1.0.0",
		"docx",
		"pdf",
		"table_content",
		"thesis_scan_file",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("server info missing %q:\n%s", want, text)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"tek satır", []string{"tek satır"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		got := splitLines(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitLines(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("kısa", 80); got != "kısa" {
		t.Errorf("truncate should keep short strings: %q", got)
	}
	got := truncate(strings.Repeat("ş", 100), 10)
	if got != strings.Repeat("ş", 10)+"..." {
		t.Errorf("truncate must cut on rune boundaries: %q", got)
	}
}
