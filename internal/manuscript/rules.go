package manuscript

import (
	"fmt"
	"math"
)

// Style-guide targets for the institutional thesis template. Rule
// checks compare snapshot attributes against these constants; a
// missing attribute is treated as condition-not-evaluated, never as a
// violation.
const (
	StyleFontName = "Times New Roman"

	BodyFontSize        = 12.0
	MainHeadingFontSize = 14.0
	SubHeadingFontSize  = 12.0
	BlockQuoteFontSize  = 10.0
	CaptionFontSize     = 10.0

	FontSizeTolerance = 0.5

	// BodyFirstLineIndent is 1.25 cm in points.
	BodyFirstLineIndent = 35.4
	IndentTolerance     = 2.0

	BodyLineSpacing   = 1.5
	SingleLineSpacing = 1.0

	lineSpacingMultipleTolerance = 0.1

	// singleLineFactor approximates the height of one line relative to
	// the font size, used to interpret exact-points line spacing.
	singleLineFactor = 1.2

	exactLineSpacingTolerance = 0.15 // fraction of the expected height
)

// RuleCheck inspects one snapshot and returns zero or more findings.
// Checks are independent pure functions with no ordering dependency.
type RuleCheck func(snap *Snapshot) []Finding

// defaultRuleChecks maps each paragraph type to its formatting check.
// Types without an entry (TOC entries, empty paragraphs, unknowns) are
// excluded from formatting checks by design.
func defaultRuleChecks(lib *Library) map[ParagraphType]RuleCheck {
	return map[ParagraphType]RuleCheck{
		TypeMainHeading:  checkMainHeading(lib),
		TypeSubHeading:   checkSubHeading(lib),
		TypeBodyText:     checkBodyText,
		TypeBlockQuote:   checkBlockQuote,
		TypeBibliography: checkBibliography,
		TypeCaptionTitle: checkCaption,
		TypeEpigraph:     checkEpigraph,
		TypeListItem:     checkListItem,
		TypeCoverText:    checkCoverText,
		TypeGhostHeading: checkGhostHeading,
	}
}

func checkMainHeading(lib *Library) RuleCheck {
	return func(snap *Snapshot) []Finding {
		var findings []Finding
		findings = appendFontNameCheck(findings, snap, "Main heading")
		findings = appendFontSizeCheck(findings, snap, MainHeadingFontSize, "Main heading")
		if snap.Font.Bold != nil && !*snap.Font.Bold {
			findings = append(findings, formatFinding(snap.Index,
				"Main heading not bold",
				"Main headings must be set in bold."))
		}
		if snap.Alignment != AlignUnset && snap.Alignment != AlignCenter {
			findings = append(findings, formatFinding(snap.Index,
				"Main heading alignment",
				fmt.Sprintf("Main headings must be centered; found %s.", snap.Alignment)))
		}
		if snap.IsListItem && !lib.IsSingleLevelNumber(snap.ListString) {
			findings = append(findings, formatFinding(snap.Index,
				"Main heading numbering depth",
				fmt.Sprintf("Main headings use single-level numbering (\"1.\"); found %q.", snap.ListString)))
		}
		return findings
	}
}

func checkSubHeading(lib *Library) RuleCheck {
	return func(snap *Snapshot) []Finding {
		var findings []Finding
		findings = appendFontNameCheck(findings, snap, "Sub-heading")
		findings = appendFontSizeCheck(findings, snap, SubHeadingFontSize, "Sub-heading")
		if snap.Font.Bold != nil && !*snap.Font.Bold {
			findings = append(findings, formatFinding(snap.Index,
				"Sub-heading not bold",
				"Sub-headings must be set in bold."))
		}
		if snap.Alignment != AlignUnset && snap.Alignment != AlignLeft && snap.Alignment != AlignJustify {
			findings = append(findings, formatFinding(snap.Index,
				"Sub-heading alignment",
				fmt.Sprintf("Sub-headings must be left-aligned; found %s.", snap.Alignment)))
		}
		if snap.IsListItem && !lib.IsMultiLevelNumber(snap.ListString) {
			findings = append(findings, formatFinding(snap.Index,
				"Sub-heading numbering depth",
				fmt.Sprintf("Sub-headings use hierarchical numbering (\"1.1.\"); found %q.", snap.ListString)))
		}
		return findings
	}
}

func checkBodyText(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "Body text")
	findings = appendFontSizeCheck(findings, snap, BodyFontSize, "Body text")
	if snap.Alignment != AlignUnset && snap.Alignment != AlignJustify {
		findings = append(findings, formatFinding(snap.Index,
			"Body text alignment",
			fmt.Sprintf("Body paragraphs must be justified; found %s.", snap.Alignment)))
	}
	// Table paragraphs keep the table's own indentation.
	if snap.TableNesting == 0 && snap.FirstLineIndent != nil &&
		math.Abs(*snap.FirstLineIndent-BodyFirstLineIndent) > IndentTolerance {
		findings = append(findings, formatFinding(snap.Index,
			"Body text first-line indent",
			fmt.Sprintf("First line must be indented 1.25 cm (%.1f pt); found %.1f pt.",
				BodyFirstLineIndent, *snap.FirstLineIndent)))
	}
	if snap.TableNesting == 0 && !lineSpacingWithin(snap, BodyLineSpacing) {
		findings = append(findings, formatFinding(snap.Index,
			"Body text line spacing",
			"Body paragraphs use 1.5-line spacing."))
	}
	return findings
}

func checkBlockQuote(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "Block quote")
	findings = appendFontSizeCheck(findings, snap, BlockQuoteFontSize, "Block quote")
	if snap.RightIndent != nil && *snap.RightIndent < BlockQuoteIndentThreshold-IndentTolerance {
		findings = append(findings, formatFinding(snap.Index,
			"Block quote right indent",
			fmt.Sprintf("Block quotes are indented at least 1 cm on the right; found %.1f pt.", *snap.RightIndent)))
	}
	if !lineSpacingWithin(snap, SingleLineSpacing) {
		findings = append(findings, formatFinding(snap.Index,
			"Block quote line spacing",
			"Block quotes use single line spacing."))
	}
	return findings
}

func checkBibliography(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "Bibliography entry")
	findings = appendFontSizeCheck(findings, snap, BodyFontSize, "Bibliography entry")
	// Hanging indent: the first line sits left of the rest of the
	// entry, reported by hosts as a negative first-line indent.
	if snap.FirstLineIndent != nil && *snap.FirstLineIndent >= 0 {
		findings = append(findings, formatFinding(snap.Index,
			"Bibliography hanging indent",
			"Bibliography entries use a hanging indent."))
	}
	if !lineSpacingWithin(snap, SingleLineSpacing) {
		findings = append(findings, formatFinding(snap.Index,
			"Bibliography line spacing",
			"Bibliography entries use single line spacing."))
	}
	return findings
}

func checkCaption(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "Caption")
	findings = appendFontSizeCheck(findings, snap, CaptionFontSize, "Caption")
	if !lineSpacingWithin(snap, SingleLineSpacing) {
		findings = append(findings, formatFinding(snap.Index,
			"Caption line spacing",
			"Captions use single line spacing."))
	}
	return findings
}

// checkEpigraph skips the italic attribute: classification already
// requires it, so only the attributes the classifier leaves open are
// checked here.
func checkEpigraph(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "Epigraph")
	findings = appendFontSizeCheck(findings, snap, BodyFontSize, "Epigraph")
	if !lineSpacingWithin(snap, SingleLineSpacing) {
		findings = append(findings, formatFinding(snap.Index,
			"Epigraph line spacing",
			"Epigraphs use single line spacing."))
	}
	return findings
}

func checkListItem(snap *Snapshot) []Finding {
	var findings []Finding
	findings = appendFontNameCheck(findings, snap, "List item")
	findings = appendFontSizeCheck(findings, snap, BodyFontSize, "List item")
	return findings
}

func checkCoverText(snap *Snapshot) []Finding {
	return appendFontNameCheck(nil, snap, "Cover text")
}

func checkGhostHeading(snap *Snapshot) []Finding {
	return []Finding{criticalFinding(snap.Index,
		"Empty heading paragraph",
		"An empty paragraph carries heading structure. It will appear as a blank "+
			"line in the generated table of contents; delete it or clear its heading style.")}
}

func appendFontNameCheck(findings []Finding, snap *Snapshot, what string) []Finding {
	if snap.Font.Name != "" && snap.Font.Name != StyleFontName {
		findings = append(findings, formatFinding(snap.Index,
			what+" font family",
			fmt.Sprintf("Font must be %s; found %s.", StyleFontName, snap.Font.Name)))
	}
	return findings
}

func appendFontSizeCheck(findings []Finding, snap *Snapshot, want float64, what string) []Finding {
	if snap.Font.Size != nil && math.Abs(*snap.Font.Size-want) > FontSizeTolerance {
		findings = append(findings, formatFinding(snap.Index,
			what+" font size",
			fmt.Sprintf("Font size must be %.0f pt; found %.1f pt.", want, *snap.Font.Size)))
	}
	return findings
}

// lineSpacingWithin reports whether the snapshot's line spacing
// matches the wanted multiple of single line spacing, accounting for
// the line-spacing rule discriminator: under the exact and at-least
// rules the numeric value is a height in points, so the expected
// height is derived from the font size. A missing value passes (not
// evaluated).
func lineSpacingWithin(snap *Snapshot, wantMultiple float64) bool {
	if snap.LineSpacing == nil {
		return true
	}
	switch snap.LineSpacingRule {
	case LineSpacingExact, LineSpacingAtLeast:
		size := BodyFontSize
		if snap.Font.Size != nil {
			size = *snap.Font.Size
		}
		want := size * singleLineFactor * wantMultiple
		return math.Abs(*snap.LineSpacing-want) <= want*exactLineSpacingTolerance
	default:
		return math.Abs(*snap.LineSpacing-wantMultiple) <= lineSpacingMultipleTolerance
	}
}
