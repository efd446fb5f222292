package manuscript

import "testing"

func TestFoldTurkish(t *testing.T) {
	lib := DefaultLibrary()

	tests := []struct {
		in   string
		want string
	}{
		{"GİRİŞ", "giriş"},
		{"IŞIK", "ışık"},
		{"İÇİNDEKİLER", "içindekiler"},
		{"  ÖZET  ", "özet"},
		{"KAYNAKÇA", "kaynakça"},
	}

	for _, tt := range tests {
		if got := lib.Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldUnicodeMangledDottedI(t *testing.T) {
	// Plain Unicode folding lowercases dotless I to "i"; the Turkish
	// library must not be built with it.
	lib := NewLibrary(FoldUnicode)
	if got := lib.Fold("IŞIK"); got == "ışık" {
		t.Errorf("FoldUnicode unexpectedly produced Turkish folding: %q", got)
	}
}

func TestIsMainHeadingText(t *testing.T) {
	lib := DefaultLibrary()

	headings := []string{
		"GİRİŞ",
		"1. GİRİŞ",
		"SONUÇ",
		"SONUÇ VE ÖNERİLER",
		"KAYNAKÇA",
		"ÖZET",
		"ABSTRACT",
		"İÇİNDEKİLER",
		"EKLER",
		"EK-1",
		"BİRİNCİ BÖLÜM",
		"2. BÖLÜM",
	}
	for _, h := range headings {
		if !lib.IsMainHeadingText(h) {
			t.Errorf("IsMainHeadingText(%q) = false, want true", h)
		}
	}

	notHeadings := []string{
		"Bu çalışmanın giriş bölümünde",
		"1.2. Araştırmanın Önemi",
		"",
	}
	for _, h := range notHeadings {
		if lib.IsMainHeadingText(h) {
			t.Errorf("IsMainHeadingText(%q) = true, want false", h)
		}
	}
}

func TestIsCaption(t *testing.T) {
	lib := DefaultLibrary()

	captions := []string{
		"Tablo 1: Katılımcı demografisi",
		"Tablo 4.2. Sonuçların dağılımı",
		"Şekil 3.1: Akış diyagramı",
		"ÇİZELGE 2.1. Ölçüm değerleri",
		"Figure 5: Pipeline overview",
	}
	for _, c := range captions {
		if !lib.IsCaption(c) {
			t.Errorf("IsCaption(%q) = false, want true", c)
		}
	}

	notCaptions := []string{
		"Tabloda görüldüğü gibi sonuçlar anlamlıdır",
		"Şekil olarak değerlendirildiğinde",
		"1.2. Araştırmanın Önemi",
	}
	for _, c := range notCaptions {
		if lib.IsCaption(c) {
			t.Errorf("IsCaption(%q) = true, want false", c)
		}
	}
}

func TestIsTOCDottedEntry(t *testing.T) {
	lib := DefaultLibrary()

	if !lib.IsTOCDottedEntry("1. GİRİŞ..................................1") {
		t.Error("dot leader line should be a TOC entry")
	}
	if lib.IsTOCDottedEntry("Cümle üç nokta ile biter... 1990") {
		t.Error("short ellipsis should not be a TOC entry")
	}
}

func TestNumberingPredicates(t *testing.T) {
	lib := DefaultLibrary()

	if !lib.IsSingleLevelNumber("1.") || !lib.IsSingleLevelNumber("12") {
		t.Error("single integers should match IsSingleLevelNumber")
	}
	if lib.IsSingleLevelNumber("1.2.") {
		t.Error("hierarchical numbers should not match IsSingleLevelNumber")
	}

	if !lib.IsMultiLevelNumber("1.2.") || !lib.IsMultiLevelNumber("2.1.3") {
		t.Error("hierarchical numbers should match IsMultiLevelNumber")
	}
	if lib.IsMultiLevelNumber("3.") {
		t.Error("single integers should not match IsMultiLevelNumber")
	}

	if !lib.HasSubHeadingPrefix("1.2. Araştırmanın Önemi") {
		t.Error("typed hierarchical prefix should match HasSubHeadingPrefix")
	}
	if lib.HasSubHeadingPrefix("1. GİRİŞ") {
		t.Error("single-level prefix should not match HasSubHeadingPrefix")
	}
}

func TestStylePredicates(t *testing.T) {
	lib := DefaultLibrary()

	if !lib.IsHeadingStyle("Heading 2") || !lib.IsHeadingStyle("Başlık 3") {
		t.Error("heading style names should match IsHeadingStyle")
	}
	if lib.IsHeadingStyle("") || lib.IsHeadingStyle("Normal") {
		t.Error("non-heading styles should not match IsHeadingStyle")
	}

	if !lib.IsHeading1Style("Heading 1") || !lib.IsHeading1Style("Başlık 1") {
		t.Error("level-1 heading styles should match IsHeading1Style")
	}
	if lib.IsHeading1Style("Heading 2") {
		t.Error("deeper headings should not match IsHeading1Style")
	}

	if !lib.IsTOCStyle("TOC 1") || !lib.IsTOCStyle("İçindekiler 2") {
		t.Error("TOC style names should match IsTOCStyle")
	}
}

func TestZoneMarkerPredicates(t *testing.T) {
	lib := DefaultLibrary()

	if !lib.IsFrontMatterMarker("ÖNSÖZ") || !lib.IsFrontMatterMarker("ŞEKİLLER LİSTESİ") {
		t.Error("front-matter markers not recognized")
	}
	// Cover identifiers must not count as front matter, or the cover
	// zone would end on the manuscript's first line.
	for _, text := range []string{"T.C.", "ANKARA ÜNİVERSİTESİ", "EĞİTİM BİLİMLERİ ENSTİTÜSÜ"} {
		if lib.IsFrontMatterMarker(text) {
			t.Errorf("IsFrontMatterMarker(%q) = true, want false", text)
		}
	}
	if !lib.IsCoverMarker("YÜKSEK LİSANS TEZİ") || !lib.IsCoverMarker("ANKARA ÜNİVERSİTESİ") {
		t.Error("cover markers not recognized")
	}
	if !lib.IsNativeAbstractMarker("ÖZET") || lib.IsNativeAbstractMarker("ÖZETLE") {
		t.Error("native abstract marker must match the bare heading only")
	}
	if !lib.IsForeignAbstractMarker("ABSTRACT") || !lib.IsForeignAbstractMarker("SUMMARY") {
		t.Error("foreign abstract markers not recognized")
	}
	if !lib.IsBodyStart("GİRİŞ") || !lib.IsBodyStart("1. GİRİŞ") || !lib.IsBodyStart("BİRİNCİ BÖLÜM") {
		t.Error("body start markers not recognized")
	}
	if !lib.IsBibliographyHeading("KAYNAKÇA") || !lib.IsBibliographyHeading("KAYNAKLAR") {
		t.Error("bibliography headings not recognized")
	}
	if lib.IsBibliographyHeading("Kaynakça taraması yapılmıştır") {
		t.Error("prose mentioning the bibliography must not match")
	}
	if !lib.IsAppendixStart("EKLER") || !lib.IsAppendixStart("EK-1") {
		t.Error("appendix markers not recognized")
	}
}
