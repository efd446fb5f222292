package manuscript

// Zone is the coarse document region the scan is currently in. Zones
// only move forward along the nominal order below; a manuscript never
// returns to an earlier region.
type Zone int

const (
	ZoneCover Zone = iota
	ZoneFrontMatter
	ZoneTableOfContents
	ZoneAbstractNative
	ZoneAbstractForeign
	ZoneBody
	ZoneBackMatter
)

// String returns a human-readable zone name.
func (z Zone) String() string {
	switch z {
	case ZoneCover:
		return "cover"
	case ZoneFrontMatter:
		return "front_matter"
	case ZoneTableOfContents:
		return "table_of_contents"
	case ZoneAbstractNative:
		return "abstract_native"
	case ZoneAbstractForeign:
		return "abstract_foreign"
	case ZoneBody:
		return "body"
	case ZoneBackMatter:
		return "back_matter"
	default:
		return "unknown"
	}
}

// Tracker carries the scan's running region state: the current zone
// and whether the scan is inside the bibliography section. One tracker
// is created per scan; there is no shared or global state.
type Tracker struct {
	lib                *Library
	zone               Zone
	insideBibliography bool
}

// NewTracker returns a tracker positioned at the cover zone.
func NewTracker(lib *Library) *Tracker {
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Tracker{lib: lib, zone: ZoneCover}
}

// Zone returns the current zone.
func (t *Tracker) Zone() Zone {
	return t.zone
}

// InsideBibliography reports whether subsequent paragraphs belong to
// the bibliography section.
func (t *Tracker) InsideBibliography() bool {
	return t.insideBibliography
}

// Advance applies the zone transitions for the given paragraph text.
// The transition conditions are evaluated in a fixed order, each gated
// by the zone value current at the moment it is checked, so an earlier
// transition closes or opens the guards of the later ones. The order is
// load-bearing: reordering changes where a paragraph like "ÖZET" lands
// when several guards could match.
func (t *Tracker) Advance(text string) {
	// 1. Leaving the cover once any front-matter identifier appears.
	if t.zone == ZoneCover && t.lib.IsFrontMatterMarker(text) {
		t.zone = ZoneFrontMatter
	}

	// 2. Table of contents heading.
	if (t.zone == ZoneCover || t.zone == ZoneFrontMatter) && t.lib.IsTOCHeading(text) {
		t.zone = ZoneTableOfContents
	}

	// 3. Native-language abstract.
	if t.zone <= ZoneTableOfContents && t.lib.IsNativeAbstractMarker(text) {
		t.zone = ZoneAbstractNative
	}

	// 4. Foreign-language abstract.
	if t.zone >= ZoneFrontMatter && t.zone <= ZoneAbstractNative && t.lib.IsForeignAbstractMarker(text) {
		t.zone = ZoneAbstractForeign
	}

	// 5. Body start ends all front regions.
	if t.zone < ZoneBody && t.lib.IsBodyStart(text) {
		t.zone = ZoneBody
		t.insideBibliography = false
	}

	// 6. Bibliography heading opens the back matter.
	if (t.zone == ZoneBody || t.zone == ZoneFrontMatter) && t.lib.IsBibliographyHeading(text) {
		t.zone = ZoneBackMatter
		t.insideBibliography = true
	}

	// 7. Appendix entries follow the bibliography but are not part of it.
	if t.lib.IsAppendixStart(text) {
		t.insideBibliography = false
	}
}
