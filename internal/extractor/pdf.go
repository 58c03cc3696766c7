// Package extractor turns a PDF document into positioned text fragments.
// The parser downstream needs (x,y) coordinates to rebuild the statement
// table, so everything here preserves position instead of flattening to
// plain text.
package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// TextItem is one atomic text run with its page position. Y increases
// downward, X rightward.
type TextItem struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Page holds the positioned fragments of one page.
type Page struct {
	Number int        `json:"number"`
	Items  []TextItem `json:"items"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
}

// Document is the extraction output: per-page positioned fragments plus
// the concatenated full text used for regex-based metadata extraction.
type Document struct {
	Pages    []Page `json:"pages"`
	FullText string `json:"fullText"`
}

// PageBreakMarker separates pages inside Document.FullText.
const PageBreakMarker = "\n--- PAGE BREAK ---\n"

// Extract reads a PDF from a byte buffer and returns its positioned
// text content. The pdf library panics on some malformed files, so the
// whole pass runs under a recover.
func Extract(buf []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf extraction crashed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(err, "opening pdf")
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}

	doc = &Document{}
	var fullText strings.Builder

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		width, height := pageSize(page)
		content := page.Content()

		items := make([]TextItem, 0, len(content.Text))
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			items = append(items, TextItem{
				Text:   t.S,
				X:      t.X,
				Y:      height - t.Y, // pdf Y grows upward; flip so Y grows downward
				Width:  t.W,
				Height: t.FontSize,
			})
			fullText.WriteString(t.S)
			fullText.WriteString(" ")
		}

		doc.Pages = append(doc.Pages, Page{
			Number: i,
			Items:  items,
			Width:  width,
			Height: height,
		})
		fullText.WriteString(PageBreakMarker)
	}

	doc.FullText = fullText.String()
	return doc, nil
}

// pageSize reads the MediaBox to get the page dimensions. Falls back to
// US Letter when the box is missing or malformed.
func pageSize(page pdf.Page) (width, height float64) {
	width, height = 612, 792

	box := page.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return width, height
	}

	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width = x1 - x0
		height = y1 - y0
	}
	return width, height
}

// HasText reports whether the document carries any extractable text at
// all. Scanned statements come back empty and are rejected upstream.
func (d *Document) HasText() bool {
	if d == nil {
		return false
	}
	trimmed := strings.ReplaceAll(d.FullText, PageBreakMarker, "")
	return strings.TrimSpace(trimmed) != ""
}
