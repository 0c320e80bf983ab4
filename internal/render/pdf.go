package render

import (
	"bytes"
	"fmt"
	"strings"
)

// Page geometry in PDF points (US Letter, 50pt margins).
const (
	pdfVersion    = "1.4"
	pdfProducer   = "exam-seating-planner"
	pdfPageWidth  = 612.0
	pdfPageHeight = 792.0
	pdfMargin     = 50.0
)

type pdfFont struct {
	size    float64
	leading float64
}

func fontFor(s Style) pdfFont {
	switch s {
	case StyleTitle:
		return pdfFont{size: 20, leading: 28}
	case StyleHeading:
		return pdfFont{size: 16, leading: 22}
	}
	return pdfFont{size: 10, leading: 14}
}

// PDF encodes the document as a PDF 1.4 file using the built-in
// Helvetica font.  No creation date is embedded so the output depends
// only on the document.
func (d Document) PDF(title string) []byte {
	pages := d.Pages
	if len(pages) == 0 {
		pages = []Page{{}}
	}

	// 1 catalog, 2 page tree, 3 font, 4 info, then content+page pairs.
	const firstPageObj = 5
	objs := []string{
		"<< /Type /Catalog\n/Pages 2 0 R\n>>",
		"", // page tree, filled once page numbers are known
		"<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>",
		fmt.Sprintf("<< /Title (%s)\n/Producer (%s)\n>>",
			escapePDFString("Seating Plan - "+title), pdfProducer),
	}

	kids := make([]string, 0, len(pages))
	for i, pg := range pages {
		content := pageContent(pg)
		contentNum := firstPageObj + 2*i
		pageNum := contentNum + 1
		objs = append(objs,
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
			fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources << /Font << /F1 3 0 R >> >>\n>>",
				pdfPageWidth, pdfPageHeight, contentNum),
		)
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", pdfVersion)
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d\n/Root 1 0 R\n/Info 4 0 R\n>>\n", len(objs)+1)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

// pageContent writes the text operators for one page, top to bottom.
// Titles are centred, headings underlined.
func pageContent(pg Page) string {
	var sb strings.Builder
	y := pdfPageHeight - pdfMargin
	for _, l := range pg.Lines {
		f := fontFor(l.Style)
		y -= f.leading
		if l.Text == "" {
			continue
		}
		x := pdfMargin
		width := textWidth(l.Text, f.size)
		if l.Style == StyleTitle {
			x = (pdfPageWidth - width) / 2
			if x < pdfMargin {
				x = pdfMargin
			}
		}
		sb.WriteString("BT\n")
		fmt.Fprintf(&sb, "/F1 %.2f Tf\n", f.size)
		fmt.Fprintf(&sb, "%.2f %.2f Td\n", x, y)
		fmt.Fprintf(&sb, "(%s) Tj\n", escapePDFString(l.Text))
		sb.WriteString("ET\n")
		if l.Style == StyleHeading {
			fmt.Fprintf(&sb, "0.75 w\n%.2f %.2f m\n%.2f %.2f l\nS\n", x, y-2, x+width, y-2)
		}
	}
	return sb.String()
}

// textWidth estimates the rendered width of s; Helvetica averages a
// little over half an em per glyph.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.55
}

// escapePDFString escapes s for a PDF literal string.  Latin-1 runes are
// written as octal escapes so they map through WinAnsiEncoding; anything
// outside Latin-1 becomes '?'.
func escapePDFString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			sb.WriteByte(' ')
		case r < 0x7F:
			sb.WriteRune(r)
		case r >= 0xA0 && r <= 0xFF:
			fmt.Fprintf(&sb, "\\%03o", r)
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
