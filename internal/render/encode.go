package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// ErrRender is returned when the rendered document cannot be written to
// the output stream.  Plan content never causes it.
var ErrRender = errors.New("render failed")

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
)

// ParseFormat maps a query value to a Format.  The empty string selects
// PDF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "application/pdf"
}

// Extension returns the file extension used for downloads.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return "pdf"
}

// Write lays out p and writes it to w in the requested format.
func Write(w io.Writer, p *model.SeatingPlan, f Format, opts Options) error {
	doc := Layout(p, opts)
	var data []byte
	switch f {
	case FormatPDF:
		data = doc.PDF(p.Subject)
	case FormatText:
		data = doc.Text()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// Text encodes the document as UTF-8 lines.  Pages are separated by a
// form feed on its own line.
func (d Document) Text() []byte {
	var buf bytes.Buffer
	for i, pg := range d.Pages {
		if i > 0 {
			buf.WriteString("\f\n")
		}
		for _, l := range pg.Lines {
			buf.WriteString(l.Text)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
