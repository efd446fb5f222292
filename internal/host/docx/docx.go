// Package docx materializes paragraph attribute snapshots from a Word
// manuscript. It reads word/document.xml and word/styles.xml straight
// from the package zip; the whole document is parsed in one batched
// read so the scanner never touches the file mid-scan.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tezlint/tezlint/internal/manuscript"
)

const (
	documentEntry = "word/document.xml"
	stylesEntry   = "word/styles.xml"

	twipsPerPoint    = 20.0
	halfPointsPerPt  = 2.0
	lineUnitsPerLine = 240.0
)

// Host adapts a .docx file to the scanner's host boundary.
type Host struct {
	path        string
	maxFileSize int64
	highlights  []manuscript.Highlight
}

// New creates a host for the given .docx path after basic validation.
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
	if !strings.HasSuffix(strings.ToLower(path), ".docx") {
		return nil, fmt.Errorf("file is not a DOCX document: %s", path)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), maxFileSize)
	}
	return &Host{path: path, maxFileSize: maxFileSize}, nil
}

// Paragraphs reads and materializes every paragraph snapshot in
// document reading order, including table cell paragraphs in place.
func (h *Host) Paragraphs(ctx context.Context) ([]manuscript.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := zip.OpenReader(h.path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer reader.Close()

	fileIndex := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		fileIndex[f.Name] = f
	}

	docData, err := readZipEntry(fileIndex, documentEntry)
	if err != nil {
		return nil, err
	}

	styleNames := readStyleNames(fileIndex)

	var doc documentXML
	if err := xml.Unmarshal(docData, &doc); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}

	builder := &snapshotBuilder{
		styleNames: styleNames,
		numbering:  make(map[string][]int),
	}
	var snapshots []manuscript.Snapshot
	for _, item := range doc.Body.Items {
		switch {
		case item.Para != nil:
			snapshots = append(snapshots, builder.snapshot(item.Para, 0))
		case item.Table != nil:
			snapshots = append(snapshots, builder.tableSnapshots(item.Table, 1)...)
		}
	}

	for i := range snapshots {
		snapshots[i].Index = i
	}
	return snapshots, nil
}

// ApplyHighlights records the requested highlights. Writing them back
// into the package is not performed; the recorded batch is available
// through Highlights for callers that surface it.
func (h *Host) ApplyHighlights(_ context.Context, highlights []manuscript.Highlight) error {
	h.highlights = append(h.highlights, highlights...)
	log.Printf("docx: recorded %d highlight(s) for %s", len(highlights), h.path)
	return nil
}

// Highlights returns the highlights recorded by previous scans.
func (h *Host) Highlights() []manuscript.Highlight {
	return h.highlights
}

func readZipEntry(fileIndex map[string]*zip.File, name string) ([]byte, error) {
	entry := fileIndex[name]
	if entry == nil {
		return nil, fmt.Errorf("%s not found in DOCX package", name)
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// readStyleNames maps style IDs to their display names. Missing or
// unparsable styles.xml is not an error; style IDs are used as-is.
func readStyleNames(fileIndex map[string]*zip.File) map[string]string {
	data, err := readZipEntry(fileIndex, stylesEntry)
	if err != nil {
		return nil
	}
	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return nil
	}
	names := make(map[string]string, len(styles.Styles))
	for _, s := range styles.Styles {
		if s.StyleID != "" && s.Name != nil && s.Name.Val != "" {
			names[s.StyleID] = s.Name.Val
		}
	}
	return names
}

// snapshotBuilder converts parsed paragraphs into snapshots, carrying
// the automatic-numbering counters across the document.
type snapshotBuilder struct {
	styleNames map[string]string
	numbering  map[string][]int
}

func (b *snapshotBuilder) snapshot(p *paragraphXML, tableNesting int) manuscript.Snapshot {
	snap := manuscript.Snapshot{
		Text:         paragraphText(p),
		TableNesting: tableNesting,
	}

	snap.Font = b.paragraphFont(p)

	props := p.Props
	if props == nil {
		return snap
	}

	if props.Style != nil {
		snap.Style = b.styleName(props.Style.Val)
	}
	if props.Jc != nil {
		snap.Alignment = alignmentFromJc(props.Jc.Val)
	}
	if props.OutlineLvl != nil {
		if lvl, err := strconv.Atoi(props.OutlineLvl.Val); err == nil {
			snap.OutlineLevel = &lvl
		}
	}
	if props.Ind != nil {
		snap.LeftIndent = twipsToPoints(firstNonEmpty(props.Ind.Left, props.Ind.Start))
		snap.RightIndent = twipsToPoints(firstNonEmpty(props.Ind.Right, props.Ind.End))
		snap.FirstLineIndent = firstLineIndent(props.Ind)
	}
	if props.Spacing != nil {
		snap.SpaceBefore = twipsToPoints(props.Spacing.Before)
		snap.SpaceAfter = twipsToPoints(props.Spacing.After)
		snap.LineSpacing, snap.LineSpacingRule = lineSpacing(props.Spacing)
	}
	if props.NumPr != nil && props.NumPr.NumID != nil {
		snap.IsListItem = true
		snap.ListString = b.nextListString(props.NumPr)
	}

	return snap
}

func (b *snapshotBuilder) tableSnapshots(t *tableXML, nesting int) []manuscript.Snapshot {
	var snapshots []manuscript.Snapshot
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			for i := range cell.Paras {
				snapshots = append(snapshots, b.snapshot(&cell.Paras[i], nesting))
			}
			for i := range cell.Tables {
				snapshots = append(snapshots, b.tableSnapshots(&cell.Tables[i], nesting+1)...)
			}
		}
	}
	return snapshots
}

func (b *snapshotBuilder) styleName(styleID string) string {
	if name, ok := b.styleNames[styleID]; ok {
		return name
	}
	return styleID
}

// nextListString renders the paragraph's automatic number by counting
// items per numbering definition and level ("2.", "2.1.").
func (b *snapshotBuilder) nextListString(numPr *numPrXML) string {
	level := 0
	if numPr.Ilvl != nil {
		if lvl, err := strconv.Atoi(numPr.Ilvl.Val); err == nil && lvl >= 0 && lvl <= manuscript.MaxOutlineLevel {
			level = lvl
		}
	}
	numID := numPr.NumID.Val

	counters := b.numbering[numID]
	if counters == nil {
		counters = make([]int, manuscript.MaxOutlineLevel+1)
		b.numbering[numID] = counters
	}
	counters[level]++
	for i := level + 1; i < len(counters); i++ {
		counters[i] = 0
	}

	parts := make([]string, 0, level+1)
	for i := 0; i <= level; i++ {
		n := counters[i]
		if n == 0 {
			n = 1
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ".") + "."
}

// paragraphFont aggregates run properties across the paragraph's text
// runs. When runs disagree on an attribute it stays unresolved, which
// the classifier treats as condition-not-met.
func (b *snapshotBuilder) paragraphFont(p *paragraphXML) manuscript.Font {
	var props []*runPropsXML
	for i := range p.Runs {
		run := &p.Runs[i]
		if len(run.Texts) == 0 || strings.TrimSpace(strings.Join(run.Texts, "")) == "" {
			continue
		}
		props = append(props, run.Props)
	}
	if len(props) == 0 && p.Props != nil && p.Props.RunProps != nil {
		props = append(props, p.Props.RunProps)
	}
	if len(props) == 0 {
		return manuscript.Font{}
	}

	font := manuscript.Font{
		Name:   agreedName(props),
		Size:   agreedSize(props),
		Bold:   agreedToggle(props, func(rp *runPropsXML) *toggleXML { return rp.Bold }),
		Italic: agreedToggle(props, func(rp *runPropsXML) *toggleXML { return rp.Italic }),
	}
	return font
}

func agreedName(props []*runPropsXML) string {
	name := ""
	for i, rp := range props {
		current := ""
		if rp != nil && rp.RFonts != nil {
			current = firstNonEmpty(rp.RFonts.Ascii, rp.RFonts.HAnsi)
		}
		if i == 0 {
			name = current
			continue
		}
		if current != name {
			return ""
		}
	}
	return name
}

func agreedSize(props []*runPropsXML) *float64 {
	var size *float64
	for i, rp := range props {
		var current *float64
		if rp != nil && rp.Size != nil {
			if halves, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil {
				pts := halves / halfPointsPerPt
				current = &pts
			}
		}
		if i == 0 {
			size = current
			continue
		}
		if !floatPtrEqual(size, current) {
			return nil
		}
	}
	return size
}

func agreedToggle(props []*runPropsXML, pick func(*runPropsXML) *toggleXML) *bool {
	var value *bool
	for i, rp := range props {
		current := toggleValue(rp, pick)
		if i == 0 {
			value = current
			continue
		}
		if !boolPtrEqual(value, current) {
			return nil
		}
	}
	return value
}

// toggleValue interprets OOXML toggle properties: an absent element
// means off, a present element means on unless its val says otherwise.
func toggleValue(rp *runPropsXML, pick func(*runPropsXML) *toggleXML) *bool {
	off := false
	on := true
	if rp == nil {
		return &off
	}
	t := pick(rp)
	if t == nil {
		return &off
	}
	switch strings.ToLower(t.Val) {
	case "0", "false", "off":
		return &off
	default:
		return &on
	}
}

func paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			sb.WriteString(t)
		}
	}
	return sb.String()
}

func alignmentFromJc(val string) manuscript.Alignment {
	switch strings.ToLower(val) {
	case "center":
		return manuscript.AlignCenter
	case "right", "end":
		return manuscript.AlignRight
	case "both", "distribute":
		return manuscript.AlignJustify
	case "left", "start":
		return manuscript.AlignLeft
	default:
		return manuscript.AlignUnset
	}
}

// firstLineIndent normalizes Word's firstLine/hanging attribute pair:
// a hanging indent is reported as a negative first-line indent.
func firstLineIndent(ind *indentXML) *float64 {
	if ind.Hanging != "" {
		if pts := twipsToPoints(ind.Hanging); pts != nil {
			neg := -*pts
			return &neg
		}
	}
	return twipsToPoints(ind.FirstLine)
}

func lineSpacing(spacing *spacingXML) (*float64, manuscript.LineSpacingRule) {
	if spacing.Line == "" {
		return nil, manuscript.LineSpacingMultiple
	}
	raw, err := strconv.ParseFloat(spacing.Line, 64)
	if err != nil {
		return nil, manuscript.LineSpacingMultiple
	}
	switch strings.ToLower(spacing.LineRule) {
	case "exact":
		pts := raw / twipsPerPoint
		return &pts, manuscript.LineSpacingExact
	case "atleast":
		pts := raw / twipsPerPoint
		return &pts, manuscript.LineSpacingAtLeast
	default:
		multiple := raw / lineUnitsPerLine
		return &multiple, manuscript.LineSpacingMultiple
	}
}

func twipsToPoints(s string) *float64 {
	if s == "" {
		return nil
	}
	raw, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	pts := raw / twipsPerPoint
	return &pts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
