package pdfhost

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tezlint/tezlint/internal/manuscript"
)

func TestNewValidation(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := New("", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path cannot be empty")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New("/nonexistent/thesis.pdf", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thesis.docx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		_, err := New(path, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a PDF")
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thesis.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		_, err := New(path, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thesis.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 ..."), 0o600))
		_, err := New(path, 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}

func TestGroupRowsMergesBaselines(t *testing.T) {
	texts := []pdf.Text{
		{S: "GİR", X: 250, Y: 700, Font: "Times-Bold", FontSize: 14},
		{S: "İŞ", X: 280, Y: 700.5, Font: "Times-Bold", FontSize: 14},
		{S: "Gövde metni", X: 100, Y: 670, Font: "TimesNewRoman", FontSize: 12},
	}

	rows := groupRows(texts)
	require.Len(t, rows, 2)
	assert.Equal(t, "GİRİŞ", rows[0].text)
	assert.Equal(t, "Gövde metni", rows[1].text)
}

func TestGroupRowsSortsTopToBottomLeftToRight(t *testing.T) {
	// Fragments arrive in content-stream order, which need not be
	// reading order.
	texts := []pdf.Text{
		{S: "ikinci satır", X: 100, Y: 650, FontSize: 12},
		{S: " dünya", X: 150, Y: 700, FontSize: 12},
		{S: "Merhaba", X: 100, Y: 700, FontSize: 12},
	}

	rows := groupRows(texts)
	require.Len(t, rows, 2)
	assert.Equal(t, "Merhaba dünya", rows[0].text)
	assert.Equal(t, "ikinci satır", rows[1].text)
}

func TestBuildParagraphsSplitsOnLargeGaps(t *testing.T) {
	rows := []row{
		{y: 700, x: 135, text: "Paragraf birinci satır", font: "TimesNewRoman", fontSize: 12},
		{y: 682, x: 100, text: "ve ikinci satırı.", font: "TimesNewRoman", fontSize: 12},
		{y: 620, x: 135, text: "Yeni paragraf.", font: "TimesNewRoman", fontSize: 12},
	}

	snaps := buildParagraphs(rows)
	require.Len(t, snaps, 2)
	assert.Equal(t, "Paragraf birinci satır ve ikinci satırı.", snaps[0].Text)
	assert.Equal(t, "Yeni paragraf.", snaps[1].Text)
}

func TestBuildParagraphsIndents(t *testing.T) {
	// Page left edge is 100; the quote block sits at 140 with both
	// lines aligned, the body paragraph has a 35pt first-line indent.
	rows := []row{
		{y: 700, x: 135, text: "Gövde paragrafının ilk satırı", fontSize: 12},
		{y: 682, x: 100, text: "ve devamı.", fontSize: 12},
		{y: 620, x: 140, text: "Alıntı bloğunun ilk satırı", fontSize: 12},
		{y: 606, x: 140, text: "ve ikinci satırı.", fontSize: 12},
	}

	snaps := buildParagraphs(rows)
	require.Len(t, snaps, 2)

	body := snaps[0]
	require.NotNil(t, body.LeftIndent)
	assert.InDelta(t, 0.0, *body.LeftIndent, 0.001)
	require.NotNil(t, body.FirstLineIndent)
	assert.InDelta(t, 35.0, *body.FirstLineIndent, 0.001)

	quote := snaps[1]
	require.NotNil(t, quote.LeftIndent)
	assert.InDelta(t, 40.0, *quote.LeftIndent, 0.001)
	require.NotNil(t, quote.FirstLineIndent)
	assert.InDelta(t, 0.0, *quote.FirstLineIndent, 0.001)
}

func TestBuildParagraphsCenteredLineHasNoIndent(t *testing.T) {
	// A lone row far from the left margin (a centered heading or cover
	// line) must not read as a block-quote indent; the signal is left
	// unresolved instead.
	rows := []row{
		{y: 700, x: 250, text: "YÜKSEK LİSANS TEZİ", fontSize: 14},
		{y: 620, x: 100, text: "Gövde paragrafının ilk satırı", fontSize: 12},
		{y: 602, x: 100, text: "ve devamı.", fontSize: 12},
	}

	snaps := buildParagraphs(rows)
	require.Len(t, snaps, 2)

	assert.Nil(t, snaps[0].LeftIndent)
	require.NotNil(t, snaps[1].LeftIndent)
	assert.InDelta(t, 0.0, *snaps[1].LeftIndent, 0.001)
}

func TestBuildParagraphsLineSpacing(t *testing.T) {
	rows := []row{
		{y: 700, x: 100, text: "Birinci satır", fontSize: 12},
		{y: 678.4, x: 100, text: "ikinci satır", fontSize: 12},
		{y: 656.8, x: 100, text: "üçüncü satır", fontSize: 12},
	}

	snaps := buildParagraphs(rows)
	require.Len(t, snaps, 1)
	snap := snaps[0]

	require.NotNil(t, snap.LineSpacing)
	assert.InDelta(t, 21.6, *snap.LineSpacing, 0.001)
	assert.Equal(t, manuscript.LineSpacingExact, snap.LineSpacingRule)
}

func TestAggregateFontFromName(t *testing.T) {
	lines := []row{
		{text: "GİRİŞ", font: "ABCDEF+TimesNewRoman-Bold", fontSize: 14},
	}
	font := aggregateFont(lines)

	assert.Equal(t, "Times New Roman", font.Name)
	require.NotNil(t, font.Size)
	assert.InDelta(t, 14.0, *font.Size, 0.001)
	require.NotNil(t, font.Bold)
	assert.True(t, *font.Bold)
	require.NotNil(t, font.Italic)
	assert.False(t, *font.Italic)
}

func TestAggregateFontDisagreementStaysUnresolved(t *testing.T) {
	lines := []row{
		{text: "karışık", font: "TimesNewRoman-Bold", fontSize: 12},
		{text: "biçimler", font: "TimesNewRoman", fontSize: 10},
	}
	font := aggregateFont(lines)

	assert.Empty(t, font.Name)
	assert.Nil(t, font.Size)
	assert.Nil(t, font.Bold)
	assert.Nil(t, font.Italic)
}

func TestCleanFontName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ABCDEF+TimesNewRomanPSMT", "Times New Roman"},
		{"TimesNewRoman-Italic", "Times New Roman"},
		{"Times,Bold", "Times New Roman"},
		{"Helvetica", "Helvetica"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanFontName(tt.in), "cleanFontName(%q)", tt.in)
	}
}

func TestApplyHighlightsIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 ..."), 0o600))
	host, err := New(path, 0)
	require.NoError(t, err)

	err = host.ApplyHighlights(context.Background(), []manuscript.Highlight{
		{ParagraphIndex: 1, Severity: manuscript.SeverityFormat},
	})
	assert.NoError(t, err)
}
