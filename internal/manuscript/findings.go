package manuscript

import "fmt"

// FindingKind categorizes a finding for presentation.
type FindingKind string

const (
	KindError   FindingKind = "error"
	KindWarning FindingKind = "warning"
	KindSuccess FindingKind = "success"
)

// Severity ranks how serious a finding is. Critical findings break the
// manuscript's structure (a ghost heading, an aborted scan); format
// findings are style-guide deviations.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityFormat   Severity = "FORMAT"
)

// Finding is one reported issue. Findings are append-only for the
// whole scan and never mutated after creation.
type Finding struct {
	Kind           FindingKind `json:"kind"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Severity       Severity    `json:"severity"`
	ParagraphIndex int         `json:"paragraph_index"`
	Location       string      `json:"location"`
}

func formatFinding(index int, title, description string) Finding {
	return Finding{
		Kind:           KindError,
		Title:          title,
		Description:    description,
		Severity:       SeverityFormat,
		ParagraphIndex: index,
		Location:       paragraphLocation(index),
	}
}

func criticalFinding(index int, title, description string) Finding {
	return Finding{
		Kind:           KindError,
		Title:          title,
		Description:    description,
		Severity:       SeverityCritical,
		ParagraphIndex: index,
		Location:       paragraphLocation(index),
	}
}

func warningFinding(index int, title, description string) Finding {
	return Finding{
		Kind:           KindWarning,
		Title:          title,
		Description:    description,
		Severity:       SeverityFormat,
		ParagraphIndex: index,
		Location:       paragraphLocation(index),
	}
}

func paragraphLocation(index int) string {
	if index < 0 {
		return "document"
	}
	return fmt.Sprintf("paragraph %d", index+1)
}
