package manuscript

// ParagraphType is the semantic role assigned to a paragraph. Exactly
// one type is produced per paragraph.
type ParagraphType string

const (
	TypeUnknown      ParagraphType = "unknown"
	TypeTOCEntry     ParagraphType = "toc_entry"
	TypeMainHeading  ParagraphType = "main_heading"
	TypeSubHeading   ParagraphType = "sub_heading"
	TypeBodyText     ParagraphType = "body_text"
	TypeBlockQuote   ParagraphType = "block_quote"
	TypeBibliography ParagraphType = "bibliography"
	TypeCaptionTitle ParagraphType = "caption_title"
	TypeEpigraph     ParagraphType = "epigraph"
	TypeListItem     ParagraphType = "list_item"
	TypeGhostHeading ParagraphType = "ghost_heading"
	TypeCoverText    ParagraphType = "cover_text"
	TypeEmpty        ParagraphType = "empty"
)

// DisplayName returns a human-readable name for a paragraph type.
func (pt ParagraphType) DisplayName() string {
	switch pt {
	case TypeTOCEntry:
		return "Table of Contents Entry"
	case TypeMainHeading:
		return "Main Heading"
	case TypeSubHeading:
		return "Sub-Heading"
	case TypeBodyText:
		return "Body Text"
	case TypeBlockQuote:
		return "Block Quote"
	case TypeBibliography:
		return "Bibliography Entry"
	case TypeCaptionTitle:
		return "Caption Title"
	case TypeEpigraph:
		return "Epigraph"
	case TypeListItem:
		return "List Item"
	case TypeGhostHeading:
		return "Ghost Heading"
	case TypeCoverText:
		return "Cover Text"
	case TypeEmpty:
		return "Empty Paragraph"
	default:
		return "Unknown"
	}
}

// classificationRule is one step of the priority chain. Matches
// returns the assigned type and whether the rule claimed the
// paragraph; the first claiming rule wins and evaluation stops.
type classificationRule struct {
	Name    string
	Matches func(snap *Snapshot, zone Zone, insideBibliography bool) (ParagraphType, bool)
}

// Classifier assigns a paragraph type from a snapshot plus the running
// zone state. It is a pure function of its inputs: the priority chain
// is an explicit ordered rule list, evaluated first match wins, and
// every rule treats a missing attribute as condition-not-met so the
// result is total even with partial host data.
type Classifier struct {
	lib   *Library
	chain []classificationRule
}

// NewClassifier creates a classifier over the given pattern library.
func NewClassifier(lib *Library) *Classifier {
	if lib == nil {
		lib = DefaultLibrary()
	}
	c := &Classifier{lib: lib}
	c.chain = c.buildChain()
	return c
}

// Classify returns exactly one paragraph type for the snapshot. It
// never fails: when no rule claims the paragraph the result is
// TypeUnknown.
func (c *Classifier) Classify(snap *Snapshot, zone Zone, insideBibliography bool) ParagraphType {
	for _, rule := range c.chain {
		if pt, ok := rule.Matches(snap, zone, insideBibliography); ok {
			return pt
		}
	}
	return TypeUnknown
}

// RuleNames returns the priority chain's rule names in evaluation
// order, mainly for reporting and tests that pin the precedence.
func (c *Classifier) RuleNames() []string {
	names := make([]string, 0, len(c.chain))
	for _, rule := range c.chain {
		names = append(names, rule.Name)
	}
	return names
}

// buildChain assembles the priority chain. Table membership and
// emptiness are structural facts that override everything else;
// TOC/cover/caption/bibliography are zone- or pattern-driven
// exceptions pulled out before the generic heading and body
// heuristics, because numbered captions would otherwise collide with
// sub-heading numbering. Heading detection is multi-signal (text OR
// outline OR style OR numbering): no single host-reported signal is
// present on every platform, and a bare outline level can be stale, so
// it always needs a corroborating signal outside the empty-paragraph
// ghost branch.
func (c *Classifier) buildChain() []classificationRule {
	lib := c.lib

	return []classificationRule{
		{
			Name: "table_content",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if snap.TableNesting <= 0 {
					return TypeUnknown, false
				}
				if lib.IsCaption(snap.Trimmed()) {
					return TypeCaptionTitle, true
				}
				return TypeBodyText, true
			},
		},
		{
			Name: "ghost_heading_or_empty",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if len(snap.Trimmed()) > 0 {
					return TypeUnknown, false
				}
				// An empty paragraph that still carries heading
				// structure corrupts generated tables of contents and
				// must be flagged, not skipped. The outline level is
				// the only signal available here.
				if snap.hasHeadingOutline() || lib.IsHeadingStyle(snap.Style) {
					return TypeGhostHeading, true
				}
				return TypeEmpty, true
			},
		},
		{
			Name: "toc_entry",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if lib.IsTOCStyle(snap.Style) || lib.IsTOCDottedEntry(snap.Trimmed()) {
					return TypeTOCEntry, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "cover_text",
			Matches: func(snap *Snapshot, zone Zone, _ bool) (ParagraphType, bool) {
				if zone == ZoneCover || lib.IsCoverMarker(snap.Trimmed()) {
					return TypeCoverText, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "caption",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if lib.IsCaption(snap.Trimmed()) {
					return TypeCaptionTitle, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "bibliography_entry",
			Matches: func(snap *Snapshot, _ Zone, insideBibliography bool) (ParagraphType, bool) {
				trimmed := snap.Trimmed()
				if insideBibliography &&
					len(trimmed) >= BibliographyEntryMinLength &&
					!lib.IsBibliographyHeading(trimmed) {
					return TypeBibliography, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "main_heading",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				trimmed := snap.Trimmed()
				if lib.IsMainHeadingText(trimmed) {
					return TypeMainHeading, true
				}
				if snap.OutlineLevel != nil && *snap.OutlineLevel <= 1 &&
					(snap.boldSet() || lib.IsHeadingStyle(snap.Style)) &&
					len(trimmed) < MainHeadingMaxLength {
					return TypeMainHeading, true
				}
				if lib.IsHeading1Style(snap.Style) {
					return TypeMainHeading, true
				}
				if snap.IsListItem && lib.IsSingleLevelNumber(snap.ListString) &&
					snap.boldSet() && len(trimmed) < MainHeadingMaxLength {
					return TypeMainHeading, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "sub_heading",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				trimmed := snap.Trimmed()
				if lib.HasSubHeadingPrefix(trimmed) && snap.boldSet() &&
					len(trimmed) < SubHeadingMaxLength {
					return TypeSubHeading, true
				}
				if snap.IsListItem && lib.IsMultiLevelNumber(snap.ListString) && snap.boldSet() {
					return TypeSubHeading, true
				}
				if lib.IsHeadingStyle(snap.Style) {
					return TypeSubHeading, true
				}
				if snap.OutlineLevel != nil && *snap.OutlineLevel >= 2 && *snap.OutlineLevel <= MaxOutlineLevel &&
					(snap.boldSet() || lib.IsHeadingStyle(snap.Style)) &&
					len(trimmed) < SubHeadingMaxLength {
					return TypeSubHeading, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "epigraph",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if snap.italicSet() && !snap.IsListItem &&
					snap.LeftIndent != nil && *snap.LeftIndent >= BlockQuoteIndentThreshold &&
					snap.RightIndent != nil && *snap.RightIndent > 0 {
					return TypeEpigraph, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "block_quote",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if !snap.IsListItem &&
					snap.LeftIndent != nil && *snap.LeftIndent >= BlockQuoteIndentThreshold {
					return TypeBlockQuote, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "list_item",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if snap.IsListItem {
					return TypeListItem, true
				}
				return TypeUnknown, false
			},
		},
		{
			Name: "body_text",
			Matches: func(snap *Snapshot, _ Zone, _ bool) (ParagraphType, bool) {
				if len(snap.Trimmed()) >= BodyTextMinLength {
					return TypeBodyText, true
				}
				return TypeUnknown, false
			},
		},
	}
}
