package docx

import (
	"encoding/xml"
	"io"
)

// Simplified WordprocessingML structures, limited to the attributes
// the snapshot needs.

type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML keeps paragraphs and tables in document order; the stock
// struct decoding would split them into two slices and lose the
// interleaving, which breaks the scanner's reading-order guarantee.
type bodyXML struct {
	Items []bodyItem
}

type bodyItem struct {
	Para  *paragraphXML
	Table *tableXML
}

func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Items = append(b.Items, bodyItem{Para: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Items = append(b.Items, bodyItem{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

type paragraphXML struct {
	Props *paraPropsXML `xml:"pPr"`
	Runs  []runXML      `xml:"r"`
}

type paraPropsXML struct {
	Style      *valXML      `xml:"pStyle"`
	Jc         *valXML      `xml:"jc"`
	OutlineLvl *valXML      `xml:"outlineLvl"`
	Ind        *indentXML   `xml:"ind"`
	Spacing    *spacingXML  `xml:"spacing"`
	NumPr      *numPrXML    `xml:"numPr"`
	RunProps   *runPropsXML `xml:"rPr"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type indentXML struct {
	Left      string `xml:"left,attr"`
	Start     string `xml:"start,attr"`
	Right     string `xml:"right,attr"`
	End       string `xml:"end,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

type spacingXML struct {
	Before   string `xml:"before,attr"`
	After    string `xml:"after,attr"`
	Line     string `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type numPrXML struct {
	Ilvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

type runXML struct {
	Props *runPropsXML `xml:"rPr"`
	Texts []string     `xml:"t"`
}

type runPropsXML struct {
	Bold   *toggleXML `xml:"b"`
	Italic *toggleXML `xml:"i"`
	Size   *valXML    `xml:"sz"`
	RFonts *rFontsXML `xml:"rFonts"`
}

type toggleXML struct {
	Val string `xml:"val,attr"`
}

type rFontsXML struct {
	Ascii string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type tableXML struct {
	Rows []rowXML `xml:"tr"`
}

type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

type cellXML struct {
	Paras  []paragraphXML `xml:"p"`
	Tables []tableXML     `xml:"tbl"`
}

type stylesXML struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []styleXML `xml:"style"`
}

type styleXML struct {
	StyleID string  `xml:"styleId,attr"`
	Name    *valXML `xml:"name"`
}
