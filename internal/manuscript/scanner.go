package manuscript

import (
	"context"
	"fmt"
	"log"
)

// Highlight is a severity-keyed mark the scan asks the host to apply
// to a paragraph. Highlights are batched and flushed once at the end
// of the scan; applying them is fire-and-forget.
type Highlight struct {
	ParagraphIndex int      `json:"paragraph_index"`
	Severity       Severity `json:"severity"`
}

// Host is the document boundary the scanner consumes. Paragraphs must
// return every paragraph's snapshot in document reading order from one
// batched read; the scanner never re-fetches attributes mid-scan.
type Host interface {
	Paragraphs(ctx context.Context) ([]Snapshot, error)
	ApplyHighlights(ctx context.Context, highlights []Highlight) error
}

// Summary aggregates a scan's outcome.
type Summary struct {
	TotalParagraphs int            `json:"total_paragraphs"`
	CountsByType    map[string]int `json:"counts_by_type"`
	CriticalCount   int            `json:"critical_count"`
	FormatCount     int            `json:"format_count"`
	FinalZone       string         `json:"final_zone"`
}

// ScanResult is the complete outcome of one scan: the append-only
// findings list plus summary counts.
type ScanResult struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
}

// Scanner drives a single-pass, single-threaded scan: it materializes
// all snapshots through the host in one exchange, advances the zone
// tracker once per paragraph, classifies, dispatches the matching rule
// check, and collects findings. Zone state for paragraph i+1 always
// reflects paragraph i; that ordering is a correctness requirement,
// not an optimization.
type Scanner struct {
	lib        *Library
	classifier *Classifier
	checks     map[ParagraphType]RuleCheck
}

// NewScanner creates a scanner over the default Turkish pattern
// library.
func NewScanner() *Scanner {
	return NewScannerWithLibrary(DefaultLibrary())
}

// NewScannerWithLibrary creates a scanner over a custom pattern
// library.
func NewScannerWithLibrary(lib *Library) *Scanner {
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Scanner{
		lib:        lib,
		classifier: NewClassifier(lib),
		checks:     defaultRuleChecks(lib),
	}
}

// Classifier exposes the scanner's classifier for callers that
// classify without running rule checks.
func (s *Scanner) Classifier() *Classifier {
	return s.classifier
}

// Scan runs the full check. A failed batch read aborts the scan with
// exactly one top-level failure finding; partial findings are never
// mixed with an incomplete snapshot set. Any other per-paragraph
// failure degrades to zero findings for that paragraph and the scan
// continues.
func (s *Scanner) Scan(ctx context.Context, host Host) (*ScanResult, error) {
	snapshots, err := host.Paragraphs(ctx)
	if err != nil {
		result := &ScanResult{
			Findings: []Finding{criticalFinding(-1,
				"Scan aborted",
				fmt.Sprintf("Could not read paragraph attributes from the document: %v", err))},
			Summary: Summary{CountsByType: map[string]int{}},
		}
		result.Summary.CriticalCount = 1
		return result, fmt.Errorf("reading paragraphs: %w", err)
	}

	result := &ScanResult{
		Summary: Summary{
			TotalParagraphs: len(snapshots),
			CountsByType:    make(map[string]int),
		},
	}

	tracker := NewTracker(s.lib)
	abstracts := newAbstractCounter()
	var highlights []Highlight

	for i := range snapshots {
		snap := &snapshots[i]
		snap.Index = i

		tracker.Advance(snap.Text)
		zone := tracker.Zone()

		pt := s.classifier.Classify(snap, zone, tracker.InsideBibliography())
		result.Summary.CountsByType[string(pt)]++

		abstracts.Observe(snap, zone, pt)

		findings := s.runCheck(pt, snap)
		if len(findings) == 0 {
			continue
		}
		result.Findings = append(result.Findings, findings...)
		highlights = append(highlights, Highlight{
			ParagraphIndex: i,
			Severity:       worstSeverity(findings),
		})
	}

	result.Findings = append(result.Findings, abstracts.Findings()...)
	result.Summary.FinalZone = tracker.Zone().String()
	tallySeverities(result)

	if len(highlights) > 0 {
		if err := host.ApplyHighlights(ctx, highlights); err != nil {
			// Highlighting is best-effort; the findings already carry
			// everything the caller needs.
			log.Printf("applying highlights: %v", err)
		}
	}

	return result, nil
}

// runCheck dispatches the rule check registered for the paragraph
// type. A check that panics on unexpected host data is converted into
// zero findings so one bad paragraph cannot sink the scan.
func (s *Scanner) runCheck(pt ParagraphType, snap *Snapshot) (findings []Finding) {
	check, ok := s.checks[pt]
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("rule check for %s paragraph %d failed: %v", pt, snap.Index, r)
			findings = nil
		}
	}()
	return check(snap)
}

func worstSeverity(findings []Finding) Severity {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return SeverityCritical
		}
	}
	return SeverityFormat
}

func tallySeverities(result *ScanResult) {
	for _, f := range result.Findings {
		switch f.Severity {
		case SeverityCritical:
			result.Summary.CriticalCount++
		case SeverityFormat:
			result.Summary.FormatCount++
		}
	}
}
