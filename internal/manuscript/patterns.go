package manuscript

import (
	"regexp"
	"strings"
	"unicode"
)

// CaseFolding selects how paragraph text is lowercased before pattern
// matching. Turkish folding maps the dotted/dotless I pairs correctly
// (İ→i, I→ı); plain Unicode folding is available for non-Turkish
// templates.
type CaseFolding int

const (
	FoldTurkish CaseFolding = iota
	FoldUnicode
)

// Threshold constants shared by the classifier and the per-type rule
// checks so both sides agree on one source of truth.
const (
	// BlockQuoteIndentThreshold is the minimum left indent, in points,
	// for a paragraph to count as a block quote (~1 cm).
	BlockQuoteIndentThreshold = 28.0

	// MainHeadingMaxLength is the maximum trimmed text length for a
	// paragraph to be considered a main heading.
	MainHeadingMaxLength = 100

	// SubHeadingMaxLength is the maximum trimmed text length for a
	// paragraph to be considered a sub-heading.
	SubHeadingMaxLength = 150

	// BodyTextMinLength is the minimum trimmed text length for a
	// paragraph to be classified as body text.
	BodyTextMinLength = 20

	// BibliographyEntryMinLength is the minimum trimmed text length
	// for a paragraph inside the bibliography to count as an entry.
	BibliographyEntryMinLength = 6

	// MaxOutlineLevel is the deepest outline level treated as heading
	// structure.
	MaxOutlineLevel = 8
)

// Library holds the compiled text patterns used by the zone tracker
// and the classifier. All patterns are matched against folded
// (lowercased) trimmed text, so they are written in lowercase Turkish.
// The library is stateless and safe for concurrent use once built.
type Library struct {
	folding CaseFolding

	frontMatterMarkers []*regexp.Regexp
	coverMarkers       []*regexp.Regexp
	mainHeadingTexts   []*regexp.Regexp

	nativeAbstract      *regexp.Regexp
	foreignAbstract     *regexp.Regexp
	tocHeading          *regexp.Regexp
	bodyStart           *regexp.Regexp
	bibliographyHeading *regexp.Regexp
	appendixStart       *regexp.Regexp
	caption             *regexp.Regexp
	tocDottedEntry      *regexp.Regexp
	tocStyle            *regexp.Regexp
	headingStyle        *regexp.Regexp
	heading1Style       *regexp.Regexp
	singleLevelNumber   *regexp.Regexp
	multiLevelNumber    *regexp.Regexp
	subHeadingPrefix    *regexp.Regexp
}

// NewLibrary builds a pattern library with the given folding policy.
func NewLibrary(folding CaseFolding) *Library {
	lib := &Library{folding: folding}

	// Cover identifiers (T.C., the university and institute names) are
	// deliberately absent here: they open the manuscript, and matching
	// them would end the cover zone on its first line.
	lib.frontMatterMarkers = compileAll(
		`^önsöz$`,
		`^kabul ve onay`,
		`^teşekkür$`,
		`^beyan$`,
		`^etik beyan`,
		`^içindekiler( tablosu)?$`,
		`^(tablolar|çizelgeler|şekiller|grafikler|resimler) (listesi|dizini)$`,
		`^(simgeler|kısaltmalar)( ve kısaltmalar)?( listesi| dizini)?$`,
	)

	lib.coverMarkers = compileAll(
		`^t\.?\s?c\.?$`,
		`üniversitesi$`,
		`enstitüsü$`,
		`anabilim dalı`,
		`bilim dalı`,
		`yüksek lisans tezi`,
		`doktora tezi`,
		`dönem projesi`,
		`tez danışmanı`,
	)

	lib.mainHeadingTexts = compileAll(
		`^(\d+\.?\s*)?giriş$`,
		`^(\d+\.?\s*)?sonuç( ve öneriler)?$`,
		`^(\d+\.?\s*)?(tartışma|öneriler|yöntem|bulgular)$`,
		`^(kaynakça|kaynaklar|bibliyografya|referanslar)$`,
		`^özet$`,
		`^abstract$`,
		`^içindekiler( tablosu)?$`,
		`^ekler?$`,
		`^ek[\s-]?\d+`,
		`^(birinci|ikinci|üçüncü|dördüncü|beşinci|altıncı|yedinci|sekizinci|dokuzuncu|onuncu) bölüm$`,
		`^\d+\.?\s*bölüm$`,
	)

	lib.nativeAbstract = regexp.MustCompile(`^özet$`)
	lib.foreignAbstract = regexp.MustCompile(`^(abstract|summary)$`)
	lib.tocHeading = regexp.MustCompile(`^içindekiler( tablosu)?$`)
	lib.bodyStart = regexp.MustCompile(`^(1\.?\s*)?giriş$|^(birinci|1\.?)\s*bölüm$`)
	lib.bibliographyHeading = regexp.MustCompile(`^(kaynakça|kaynaklar|bibliyografya|referanslar)$`)
	lib.appendixStart = regexp.MustCompile(`^ekler?$|^ek[\s-]?\d+`)
	lib.caption = regexp.MustCompile(`^(tablo|çizelge|şekil|grafik|resim|harita|fotoğraf|figure|table)\s+\d+(\.\d+)*\s*[:.]`)
	lib.tocDottedEntry = regexp.MustCompile(`\.{4,}\s*\d+$`)
	lib.tocStyle = regexp.MustCompile(`toc|içindekiler`)
	lib.headingStyle = regexp.MustCompile(`heading|başlık|baslik|title`)
	lib.heading1Style = regexp.MustCompile(`(heading|başlık|baslik)\s*1$`)
	lib.singleLevelNumber = regexp.MustCompile(`^\d+\.?$`)
	lib.multiLevelNumber = regexp.MustCompile(`^\d+(\.\d+)+\.?$`)
	lib.subHeadingPrefix = regexp.MustCompile(`^\d+\.\d+(\.\d+)*\.?\s+\S`)

	return lib
}

// DefaultLibrary returns the library configured for the Turkish thesis
// template.
func DefaultLibrary() *Library {
	return NewLibrary(FoldTurkish)
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Fold trims and lowercases text according to the configured folding
// policy. All predicate methods fold their input, so callers may pass
// raw paragraph text.
func (l *Library) Fold(s string) string {
	s = strings.TrimSpace(s)
	if l.folding == FoldTurkish {
		return strings.ToLowerSpecial(unicode.TurkishCase, s)
	}
	return strings.ToLower(s)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsFrontMatterMarker reports whether text identifies a front-matter
// page (preface, acknowledgements, lists of tables, and so on).
func (l *Library) IsFrontMatterMarker(text string) bool {
	return matchAny(l.frontMatterMarkers, l.Fold(text))
}

// IsCoverMarker reports whether text carries a cover-page identifier
// such as the institution name or the degree type.
func (l *Library) IsCoverMarker(text string) bool {
	return matchAny(l.coverMarkers, l.Fold(text))
}

// IsNativeAbstractMarker reports whether text is the native-language
// abstract heading.
func (l *Library) IsNativeAbstractMarker(text string) bool {
	return l.nativeAbstract.MatchString(l.Fold(text))
}

// IsForeignAbstractMarker reports whether text is the foreign-language
// abstract heading.
func (l *Library) IsForeignAbstractMarker(text string) bool {
	return l.foreignAbstract.MatchString(l.Fold(text))
}

// IsTOCHeading reports whether text is the table-of-contents heading.
func (l *Library) IsTOCHeading(text string) bool {
	return l.tocHeading.MatchString(l.Fold(text))
}

// IsBodyStart reports whether text marks the start of the thesis body.
func (l *Library) IsBodyStart(text string) bool {
	return l.bodyStart.MatchString(l.Fold(text))
}

// IsBibliographyHeading reports whether text is the bibliography
// section heading.
func (l *Library) IsBibliographyHeading(text string) bool {
	return l.bibliographyHeading.MatchString(l.Fold(text))
}

// IsAppendixStart reports whether text marks the start of an appendix.
func (l *Library) IsAppendixStart(text string) bool {
	return l.appendixStart.MatchString(l.Fold(text))
}

// IsMainHeadingText reports whether text matches a known main-heading
// phrase (introduction, conclusion, chapter words, section headings).
func (l *Library) IsMainHeadingText(text string) bool {
	return matchAny(l.mainHeadingTexts, l.Fold(text))
}

// IsCaption reports whether text starts with a labeled, numbered
// caption prefix followed by a colon or period.
func (l *Library) IsCaption(text string) bool {
	return l.caption.MatchString(l.Fold(text))
}

// IsTOCDottedEntry reports whether text looks like a generated
// table-of-contents line: a dot leader followed by a page number.
func (l *Library) IsTOCDottedEntry(text string) bool {
	return l.tocDottedEntry.MatchString(strings.TrimSpace(text))
}

// IsTOCStyle reports whether a style name marks a table-of-contents
// entry.
func (l *Library) IsTOCStyle(style string) bool {
	if style == "" {
		return false
	}
	return l.tocStyle.MatchString(l.Fold(style))
}

// IsHeadingStyle reports whether a style name marks structural heading
// formatting at any level.
func (l *Library) IsHeadingStyle(style string) bool {
	if style == "" {
		return false
	}
	return l.headingStyle.MatchString(l.Fold(style))
}

// IsHeading1Style reports whether a style name marks level-1 heading
// formatting specifically.
func (l *Library) IsHeading1Style(style string) bool {
	if style == "" {
		return false
	}
	return l.heading1Style.MatchString(l.Fold(style))
}

// IsSingleLevelNumber reports whether an automatic numbering string is
// a single integer ("1.", "2").
func (l *Library) IsSingleLevelNumber(listString string) bool {
	return l.singleLevelNumber.MatchString(strings.TrimSpace(listString))
}

// IsMultiLevelNumber reports whether an automatic numbering string is
// hierarchical ("1.1.", "1.2.3").
func (l *Library) IsMultiLevelNumber(listString string) bool {
	return l.multiLevelNumber.MatchString(strings.TrimSpace(listString))
}

// HasSubHeadingPrefix reports whether text begins with a typed
// multi-level numeric prefix followed by a title ("1.2. Yöntem").
func (l *Library) HasSubHeadingPrefix(text string) bool {
	return l.subHeadingPrefix.MatchString(strings.TrimSpace(text))
}
