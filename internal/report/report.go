// Package report renders scan results for the CLI check mode and the
// MCP tool responses.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tezlint/tezlint/internal/manuscript"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render formats a scan result in the requested format.
func Render(result *manuscript.ScanResult, format string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}
	switch format {
	case FormatJSON:
		return renderJSON(result)
	case FormatText, "":
		return renderText(result), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s (must be 'text' or 'json')", format)
	}
}

func renderJSON(result *manuscript.ScanResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}

func renderText(result *manuscript.ScanResult) string {
	var sb strings.Builder

	sb.WriteString("Manuscript Check Report\n")
	sb.WriteString(fmt.Sprintf("Paragraphs scanned: %d\n", result.Summary.TotalParagraphs))
	sb.WriteString(fmt.Sprintf("Final zone: %s\n", result.Summary.FinalZone))
	sb.WriteString(fmt.Sprintf("Critical findings: %d\n", result.Summary.CriticalCount))
	sb.WriteString(fmt.Sprintf("Format findings: %d\n", result.Summary.FormatCount))

	if len(result.Summary.CountsByType) > 0 {
		sb.WriteString("\nParagraph types:\n")
		types := make([]string, 0, len(result.Summary.CountsByType))
		for t := range result.Summary.CountsByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			sb.WriteString(fmt.Sprintf("  %-15s %d\n", t, result.Summary.CountsByType[t]))
		}
	}

	if len(result.Findings) == 0 {
		sb.WriteString("\nNo findings. The manuscript conforms to the template.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\nFindings (%d):\n", len(result.Findings)))
	for i, f := range result.Findings {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n", i+1, f.Severity, f.Title, f.Location))
		sb.WriteString(fmt.Sprintf("   %s\n", f.Description))
	}

	return sb.String()
}
