package manuscript

import "strings"

// Alignment is the internal paragraph alignment enumeration. Host
// adapters normalize their platform-specific alignment values into it;
// the core never compares against host raw values.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns a human-readable alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justified"
	default:
		return "unset"
	}
}

// LineSpacingRule discriminates the meaning of a snapshot's numeric
// line-spacing value.
type LineSpacingRule int

const (
	// LineSpacingMultiple means the value is a multiple of single line
	// spacing (1.0, 1.5, 2.0).
	LineSpacingMultiple LineSpacingRule = iota
	// LineSpacingExact means the value is an exact height in points.
	LineSpacingExact
	// LineSpacingAtLeast means the value is a minimum height in points.
	LineSpacingAtLeast
)

// Font holds the typographic attributes of a paragraph. Any field may
// be unresolved when the host reports mixed formatting within one
// paragraph: Name is empty, the pointers are nil.
type Font struct {
	Name   string   `json:"name,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	Bold   *bool    `json:"bold,omitempty"`
	Italic *bool    `json:"italic,omitempty"`
}

// Snapshot is the fully-materialized, read-only set of one paragraph's
// attributes. It is built exactly once per paragraph from a single
// batched host read before classification runs, and is the sole input
// to classification and rule checking. Optional attributes are
// pointers; nil means the host could not resolve the value.
type Snapshot struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`

	// OutlineLevel is the structural heading depth, 0-based. Nil when
	// the paragraph carries no heading structure in the host's model.
	OutlineLevel *int `json:"outline_level,omitempty"`

	// TableNesting is 0 outside tables, >=1 inside.
	TableNesting int `json:"table_nesting"`

	Font      Font      `json:"font"`
	Alignment Alignment `json:"alignment"`

	FirstLineIndent *float64 `json:"first_line_indent,omitempty"` // points
	LeftIndent      *float64 `json:"left_indent,omitempty"`       // points
	RightIndent     *float64 `json:"right_indent,omitempty"`      // points

	LineSpacing     *float64        `json:"line_spacing,omitempty"`
	LineSpacingRule LineSpacingRule `json:"line_spacing_rule"`

	SpaceBefore *float64 `json:"space_before,omitempty"` // points
	SpaceAfter  *float64 `json:"space_after,omitempty"`  // points

	// IsListItem is true when the paragraph carries automatic list
	// numbering; ListString is the rendered number ("1.", "1.1.").
	IsListItem bool   `json:"is_list_item"`
	ListString string `json:"list_string,omitempty"`
}

// Trimmed returns the paragraph text with surrounding whitespace
// removed.
func (s *Snapshot) Trimmed() string {
	return strings.TrimSpace(s.Text)
}

// boldSet reports whether the font is known to be bold. A nil Bold
// fails closed (treated as not bold).
func (s *Snapshot) boldSet() bool {
	return s.Font.Bold != nil && *s.Font.Bold
}

// italicSet reports whether the font is known to be italic.
func (s *Snapshot) italicSet() bool {
	return s.Font.Italic != nil && *s.Font.Italic
}

// hasHeadingOutline reports whether the paragraph carries an outline
// level inside the heading range.
func (s *Snapshot) hasHeadingOutline() bool {
	return s.OutlineLevel != nil && *s.OutlineLevel >= 0 && *s.OutlineLevel <= MaxOutlineLevel
}
