package manuscript

import (
	"fmt"
	"strings"
)

// Abstract word-count window required by the template.
const (
	AbstractMinWords = 200
	AbstractMaxWords = 250
)

// abstractCounter accumulates body-text word counts per abstract zone.
// It lives outside the classifier: the classifier stays a pure
// function while the scan driver feeds the counter.
type abstractCounter struct {
	nativeWords  int
	foreignWords int
	nativeIndex  int
	foreignIndex int
}

func newAbstractCounter() *abstractCounter {
	return &abstractCounter{nativeIndex: -1, foreignIndex: -1}
}

// Observe adds the paragraph's words to the counter for the current
// zone. Only body text counts: the abstract heading itself and stray
// empty paragraphs do not.
func (a *abstractCounter) Observe(snap *Snapshot, zone Zone, pt ParagraphType) {
	if pt != TypeBodyText {
		return
	}
	words := len(strings.Fields(snap.Trimmed()))
	switch zone {
	case ZoneAbstractNative:
		if a.nativeIndex < 0 {
			a.nativeIndex = snap.Index
		}
		a.nativeWords += words
	case ZoneAbstractForeign:
		if a.foreignIndex < 0 {
			a.foreignIndex = snap.Index
		}
		a.foreignWords += words
	}
}

// Findings reports word-count violations for abstracts that were
// actually seen; a manuscript without an abstract section produces
// none here (its absence is a structural concern, not a word count).
func (a *abstractCounter) Findings() []Finding {
	var findings []Finding
	if f, ok := abstractWordFinding("Abstract (ÖZET)", a.nativeWords, a.nativeIndex); ok {
		findings = append(findings, f)
	}
	if f, ok := abstractWordFinding("Abstract (ABSTRACT)", a.foreignWords, a.foreignIndex); ok {
		findings = append(findings, f)
	}
	return findings
}

func abstractWordFinding(what string, words, index int) (Finding, bool) {
	if index < 0 {
		return Finding{}, false
	}
	if words >= AbstractMinWords && words <= AbstractMaxWords {
		return Finding{}, false
	}
	return warningFinding(index,
		what+" word count",
		fmt.Sprintf("%s must contain %d-%d words; counted %d.",
			what, AbstractMinWords, AbstractMaxWords, words)), true
}
