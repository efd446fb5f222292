// Package pdfhost materializes paragraph attribute snapshots from a
// PDF rendition of the manuscript. PDF carries no styles, outline
// levels, or automatic numbering, so the snapshots it produces are
// deliberately degraded: text, font name/size, boldness inferred from
// the font name, and indentation derived from x-offsets. The
// classifier is built to work from whatever subset of signals the
// host can supply.
package pdfhost

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tezlint/tezlint/internal/manuscript"
)

const (
	// rowYTolerance groups text fragments with near-equal baselines
	// into one visual row.
	rowYTolerance = 2.0

	// paragraphGapFactor is the baseline gap, as a multiple of the
	// font size, beyond which consecutive rows belong to different
	// paragraphs.
	paragraphGapFactor = 1.8

	// centeredIndentCutoff is the largest left offset, in points, a
	// lone row can have and still be reported as an indent. Beyond it
	// the row is more likely centered, and the offset says nothing
	// about indentation.
	centeredIndentCutoff = 72.0

	defaultFontSize = 12.0
)

// Host adapts a .pdf file to the scanner's host boundary. It is
// read-only: highlight flushes are accepted and dropped.
type Host struct {
	path        string
	maxFileSize int64
}

// New creates a host for the given .pdf path after basic validation.
func New(path string, maxFileSize int64) (*Host, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), maxFileSize)
	}
	return &Host{path: path, maxFileSize: maxFileSize}, nil
}

// Paragraphs extracts positioned text from every page and assembles
// paragraph snapshots in reading order.
func (h *Host) Paragraphs(ctx context.Context) ([]manuscript.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var snapshots []manuscript.Snapshot
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts := pageTexts(page)
		if len(texts) == 0 {
			continue
		}
		rows := groupRows(texts)
		snapshots = append(snapshots, buildParagraphs(rows)...)
	}

	for i := range snapshots {
		snapshots[i].Index = i
	}
	return snapshots, nil
}

// ApplyHighlights is a no-op: the PDF host is read-only.
func (h *Host) ApplyHighlights(_ context.Context, _ []manuscript.Highlight) error {
	return nil
}

// pageTexts reads a page's positioned text fragments, recovering from
// library panics on malformed content streams.
func pageTexts(page pdf.Page) (texts []pdf.Text) {
	defer func() {
		if recover() != nil {
			texts = nil
		}
	}()
	return page.Content().Text
}

// row is one visual text line: fragments sharing a baseline.
type row struct {
	y        float64
	x        float64
	text     string
	font     string
	fontSize float64
}

// groupRows clusters text fragments into visual rows by baseline,
// ordered top to bottom (PDF y grows upward).
func groupRows(texts []pdf.Text) []row {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > rowYTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []row
	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if len(rows) > 0 && math.Abs(rows[len(rows)-1].y-t.Y) <= rowYTolerance {
			rows[len(rows)-1].text += t.S
			continue
		}
		rows = append(rows, row{
			y:        t.Y,
			x:        t.X,
			text:     t.S,
			font:     t.Font,
			fontSize: t.FontSize,
		})
	}
	return rows
}

// buildParagraphs merges consecutive rows into paragraphs: a baseline
// gap clearly larger than the line height starts a new paragraph.
func buildParagraphs(rows []row) []manuscript.Snapshot {
	if len(rows) == 0 {
		return nil
	}

	pageLeft := rows[0].x
	for _, r := range rows {
		if r.x < pageLeft {
			pageLeft = r.x
		}
	}

	var snapshots []manuscript.Snapshot
	var current []row
	flush := func() {
		if len(current) > 0 {
			snapshots = append(snapshots, paragraphSnapshot(current, pageLeft))
			current = nil
		}
	}

	for i, r := range rows {
		if i > 0 {
			prev := rows[i-1]
			size := prev.fontSize
			if size <= 0 {
				size = defaultFontSize
			}
			if prev.y-r.y > size*paragraphGapFactor {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return snapshots
}

func paragraphSnapshot(lines []row, pageLeft float64) manuscript.Snapshot {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(strings.TrimSpace(l.text))
	}

	snap := manuscript.Snapshot{Text: sb.String()}
	snap.Font = aggregateFont(lines)

	bodyLeft := lines[0].x
	for _, l := range lines[1:] {
		if l.x < bodyLeft {
			bodyLeft = l.x
		}
	}
	left := bodyLeft - pageLeft
	if len(lines) > 1 || left < centeredIndentCutoff {
		snap.LeftIndent = &left
	}

	if len(lines) > 1 {
		first := lines[0].x - bodyLeft
		snap.FirstLineIndent = &first

		gap := (lines[0].y - lines[len(lines)-1].y) / float64(len(lines)-1)
		snap.LineSpacing = &gap
		snap.LineSpacingRule = manuscript.LineSpacingExact
	}

	return snap
}

// aggregateFont resolves font attributes only when every line agrees;
// boldness and italics are inferred from the PostScript font name, the
// only typographic signal a PDF rendition carries.
func aggregateFont(lines []row) manuscript.Font {
	name := lines[0].font
	size := lines[0].fontSize
	for _, l := range lines[1:] {
		if l.font != name {
			name = ""
		}
		if l.fontSize != size {
			size = 0
		}
	}

	font := manuscript.Font{Name: cleanFontName(name)}
	if size > 0 {
		font.Size = &size
	}
	if name != "" {
		lower := strings.ToLower(name)
		bold := strings.Contains(lower, "bold")
		italic := strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
		font.Bold = &bold
		font.Italic = &italic
	}
	return font
}

// cleanFontName strips the subset prefix ("ABCDEF+") and style suffix
// from a PostScript font name so it can be compared with the style
// guide's family name.
func cleanFontName(name string) string {
	if name == "" {
		return ""
	}
	if idx := strings.Index(name, "+"); idx >= 0 && idx == 6 {
		name = name[idx+1:]
	}
	if idx := strings.IndexAny(name, ",-"); idx > 0 {
		name = name[:idx]
	}
	// PostScript names drop spaces ("TimesNewRoman").
	switch strings.ToLower(name) {
	case "timesnewroman", "timesnewromanpsmt", "times":
		return "Times New Roman"
	}
	return name
}
