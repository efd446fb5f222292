// Package service exposes the manuscript checks as coarse operations
// consumed by both the CLI check mode and the MCP tools.
package service

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tezlint/tezlint/internal/host/docx"
	"github.com/tezlint/tezlint/internal/host/pdfhost"
	"github.com/tezlint/tezlint/internal/manuscript"
)

// Service orchestrates host selection, scanning, and validation.
type Service struct {
	maxFileSize int64
	scanner     *manuscript.Scanner
}

// NewService creates a service with the given file size limit.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		scanner:     manuscript.NewScanner(),
	}
}

// ScanFileRequest represents a request to scan a manuscript file.
type ScanFileRequest struct {
	Path string `json:"path"`
}

// ScanFileResult represents the result of scanning a manuscript file.
type ScanFileResult struct {
	Path   string                 `json:"path"`
	Format string                 `json:"format"`
	Result *manuscript.ScanResult `json:"result"`
}

// ClassifyTextRequest represents a request to classify raw text lines.
type ClassifyTextRequest struct {
	Lines []string `json:"lines"`
}

// ClassifiedParagraph is one line's classification outcome.
type ClassifiedParagraph struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Zone  string `json:"zone"`
	Type  string `json:"type"`
}

// ClassifyTextResult represents the result of classifying raw text.
type ClassifyTextResult struct {
	Paragraphs []ClassifiedParagraph `json:"paragraphs"`
	FinalZone  string                `json:"final_zone"`
}

// ValidateFileRequest represents a request to validate a manuscript file.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult represents the result of validating a manuscript file.
type ValidateFileResult struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message,omitempty"`
	Pages      int    `json:"pages,omitempty"`
	PDFVersion string `json:"pdf_version,omitempty"`
}

// ServerInfoResult represents server information.
type ServerInfoResult struct {
	ServerName       string   `json:"server_name"`
	Version          string   `json:"version"`
	MaxFileSize      int64    `json:"max_file_size"`
	SupportedFormats []string `json:"supported_formats"`
	RuleNames        []string `json:"rule_names"`
}

// ScanFile runs the full manuscript check against a .docx or .pdf file.
func (s *Service) ScanFile(ctx context.Context, req ScanFileRequest) (*ScanFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	format := formatForPath(req.Path)
	host, err := s.hostForPath(req.Path)
	if err != nil {
		return nil, err
	}

	result, err := s.scanner.Scan(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return &ScanFileResult{
		Path:   req.Path,
		Format: format,
		Result: result,
	}, nil
}

// ClassifyText classifies plain text lines with no formatting signals.
// It exists for quick experiments against the decision chain: only the
// text-driven rules can fire, formatting rule checks are skipped.
func (s *Service) ClassifyText(req ClassifyTextRequest) (*ClassifyTextResult, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("lines cannot be empty")
	}

	lib := manuscript.DefaultLibrary()
	tracker := manuscript.NewTracker(lib)
	classifier := s.scanner.Classifier()

	result := &ClassifyTextResult{
		Paragraphs: make([]ClassifiedParagraph, 0, len(req.Lines)),
	}
	for i, line := range req.Lines {
		snap := &manuscript.Snapshot{Index: i, Text: line}
		tracker.Advance(snap.Text)
		pt := classifier.Classify(snap, tracker.Zone(), tracker.InsideBibliography())
		result.Paragraphs = append(result.Paragraphs, ClassifiedParagraph{
			Index: i,
			Text:  line,
			Zone:  tracker.Zone().String(),
			Type:  string(pt),
		})
	}
	result.FinalZone = tracker.Zone().String()
	return result, nil
}

// ValidateFile checks that a manuscript file is readable without
// scanning it. PDF validation goes through pdfcpu in relaxed mode;
// DOCX validation checks the package structure.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	result := &ValidateFileResult{
		Path:   req.Path,
		Format: formatForPath(req.Path),
	}

	switch result.Format {
	case "docx":
		if err := s.validateDOCX(req.Path); err != nil {
			result.Message = err.Error()
			return result, nil
		}
	case "pdf":
		pages, version, err := s.validatePDF(req.Path)
		if err != nil {
			result.Message = err.Error()
			return result, nil
		}
		result.Pages = pages
		result.PDFVersion = version
	default:
		result.Message = fmt.Sprintf("unsupported file type: %s", filepath.Ext(req.Path))
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// ServerInfo reports server metadata and the active rule chain.
func (s *Service) ServerInfo(serverName, version string) *ServerInfoResult {
	return &ServerInfoResult{
		ServerName:       serverName,
		Version:          version,
		MaxFileSize:      s.maxFileSize,
		SupportedFormats: []string{"docx", "pdf"},
		RuleNames:        s.scanner.Classifier().RuleNames(),
	}
}

func (s *Service) hostForPath(path string) (manuscript.Host, error) {
	switch formatForPath(path) {
	case "docx":
		return docx.New(path, s.maxFileSize)
	case "pdf":
		return pdfhost.New(path, s.maxFileSize)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .docx or .pdf)", filepath.Ext(path))
	}
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return "docx"
	case ".pdf":
		return "pdf"
	default:
		return ""
	}
}

func (s *Service) validateDOCX(path string) error {
	if _, err := docx.New(path, s.maxFileSize); err != nil {
		return err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("not a valid DOCX package: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			return nil
		}
	}
	return fmt.Errorf("DOCX package has no word/document.xml")
}

func (s *Service) validatePDF(path string) (int, string, error) {
	if _, err := pdfhost.New(path, s.maxFileSize); err != nil {
		return 0, "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(file, conf)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return 0, "", fmt.Errorf("failed to ensure page count: %w", err)
	}

	return pdfCtx.PageCount, pdfCtx.HeaderVersion.String(), nil
}
