// Package render turns a seating plan into a printable, paginated
// document.  Layout is pure and deterministic: the same plan always
// yields the same pages, and the PDF and text encoders add nothing that
// depends on time or environment, so repeated exports are byte-identical.
package render

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// DateLayout is the calendar date format printed on the title section.
const DateLayout = "2006-01-02"

// Style selects the typeface size a line is printed with.
type Style int

const (
	StyleBody Style = iota
	StyleTitle
	StyleHeading
)

// Line is one printed line.  An empty Text is a blank spacer line.
type Line struct {
	Text  string
	Style Style
}

// Page is an ordered list of lines.
type Page struct {
	Lines []Line
}

// Document is the full paginated layout of a plan.
type Document struct {
	Pages []Page
}

// Options tune pagination.  Zero values fall back to DefaultOptions.
type Options struct {
	LinesPerPage int // lines per page including headings and spacers
	MaxLineWidth int // runes per row line before wrapping
}

// DefaultOptions returns the pagination used by the API.
func DefaultOptions() Options {
	return Options{LinesPerPage: 44, MaxLineWidth: 96}
}

const (
	minLinesPerPage = 10
	minLineWidth    = 24
)

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.LinesPerPage <= 0 {
		o.LinesPerPage = def.LinesPerPage
	}
	if o.LinesPerPage < minLinesPerPage {
		o.LinesPerPage = minLinesPerPage
	}
	if o.MaxLineWidth <= 0 {
		o.MaxLineWidth = def.MaxLineWidth
	}
	if o.MaxLineWidth < minLineWidth {
		o.MaxLineWidth = minLineWidth
	}
	return o
}

// Row is one occupied row of a hall with its seats in column order.
type Row struct {
	Number int
	Seats  []model.SeatAssignment
}

// GroupRows rebuilds the occupied rows of a hall from its seat list.
// Rows come back in ascending numeric order and seats in ascending
// column order; rows without seats do not appear at all.
func GroupRows(seats []model.SeatAssignment) []Row {
	byRow := make(map[int][]model.SeatAssignment)
	for _, s := range seats {
		byRow[s.Row] = append(byRow[s.Row], s)
	}
	rows := make([]Row, 0, len(byRow))
	for n, ss := range byRow {
		sort.SliceStable(ss, func(i, j int) bool { return ss[i].Column < ss[j].Column })
		rows = append(rows, Row{Number: n, Seats: ss})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Number < rows[j].Number })
	return rows
}

// Token formats one seat as [registerNumber-department].
func Token(s model.SeatAssignment) string {
	return "[" + s.RegisterNumber + "-" + s.Department + "]"
}

// Lines formats the row as "Row N: [..] [..]".  When the text would
// exceed width runes it continues on further lines indented under the
// first token.
func (r Row) Lines(width int) []string {
	label := "Row " + strconv.Itoa(r.Number) + ":"
	indent := strings.Repeat(" ", utf8.RuneCountInString(label))

	var out []string
	cur := label
	placed := 0
	for _, s := range r.Seats {
		tok := Token(s)
		next := cur + " " + tok
		if placed > 0 && width > 0 && utf8.RuneCountInString(next) > width {
			out = append(out, cur)
			cur = indent + " " + tok
			placed = 1
			continue
		}
		cur = next
		placed++
	}
	return append(out, cur)
}

// Layout builds the paginated document for p.  The title section comes
// first, then every hall in stored order; each hall after the first
// starts on a new page, and a hall that does not fit on one page
// continues under a "(continued)" heading.
func Layout(p *model.SeatingPlan, opts Options) Document {
	opts = opts.normalized()
	pg := &pager{limit: opts.LinesPerPage}

	pg.add(Line{Text: "Exam Seating Arrangement", Style: StyleTitle})
	pg.add(Line{})
	pg.add(Line{Text: "Subject: " + p.Subject})
	pg.add(Line{Text: "Exam Date: " + p.ExamDate.Format(DateLayout)})
	pg.add(Line{Text: "Total Students: " + strconv.Itoa(p.TotalStudents)})
	pg.add(Line{})

	for i, hall := range p.Arrangement {
		heading := "Hall: " + hall.HallName
		rows := GroupRows(hall.Seats)
		if i > 0 || pg.remaining() < headingSpace(rows, opts) {
			pg.newPage()
		}
		pg.add(Line{Text: heading, Style: StyleHeading})
		pg.add(Line{})

		for _, row := range rows {
			lines := row.Lines(opts.MaxLineWidth)
			if len(lines) > pg.remaining() && len(lines) <= pg.limit-2 {
				pg.newPage()
				pg.add(Line{Text: heading + " (continued)", Style: StyleHeading})
				pg.add(Line{})
			}
			for _, l := range lines {
				pg.add(Line{Text: l})
			}
		}
	}
	return pg.document()
}

// headingSpace is the room a hall heading needs on the current page: the
// heading, its spacer and the whole first row, so a heading never ends a
// page on its own.
func headingSpace(rows []Row, opts Options) int {
	if len(rows) == 0 {
		return 3
	}
	n := len(rows[0].Lines(opts.MaxLineWidth))
	if n > opts.LinesPerPage-2 {
		n = 1
	}
	return 2 + n
}

// pager accumulates lines into fixed-height pages.
type pager struct {
	limit int
	pages []Page
	cur   []Line
}

func (p *pager) remaining() int { return p.limit - len(p.cur) }

func (p *pager) add(l Line) {
	if len(p.cur) == p.limit {
		p.newPage()
	}
	p.cur = append(p.cur, l)
}

// newPage closes the current page.  An empty page is never emitted.
func (p *pager) newPage() {
	if len(p.cur) == 0 {
		return
	}
	p.pages = append(p.pages, Page{Lines: trimTrailingBlank(p.cur)})
	p.cur = nil
}

func (p *pager) document() Document {
	p.newPage()
	return Document{Pages: p.pages}
}

func trimTrailingBlank(lines []Line) []Line {
	for len(lines) > 0 && lines[len(lines)-1].Text == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
