package render

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

func seat(row, col int, reg, dept string) model.SeatAssignment {
	return model.SeatAssignment{Row: row, Column: col, RegisterNumber: reg, Department: dept}
}

func bodyLines(pg Page) []string {
	var out []string
	for _, l := range pg.Lines {
		if l.Style == StyleBody && strings.HasPrefix(l.Text, "Row ") {
			out = append(out, l.Text)
		}
	}
	return out
}

func samplePlan() *model.SeatingPlan {
	return &model.SeatingPlan{
		ID:            "p1",
		Subject:       "Mathematics",
		ExamDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		TotalStudents: 3,
		Arrangement: []model.HallAllocation{{
			HallID:   1,
			HallName: "Main Hall",
			Seats: []model.SeatAssignment{
				seat(1, 1, "S1", "CSE"),
				seat(1, 2, "S2", "ECE"),
				seat(2, 1, "S3", "CSE"),
			},
		}},
	}
}

func TestLayoutExampleHall(t *testing.T) {
	doc := Layout(samplePlan(), Options{})
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	got := bodyLines(doc.Pages[0])
	want := []string{"Row 1: [S1-CSE] [S2-ECE]", "Row 2: [S3-CSE]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("row lines = %q, want %q", got, want)
	}
}

func TestLayoutHeader(t *testing.T) {
	doc := Layout(samplePlan(), Options{})
	var texts []string
	for _, l := range doc.Pages[0].Lines {
		texts = append(texts, l.Text)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{
		"Exam Seating Arrangement",
		"Subject: Mathematics",
		"Exam Date: 2026-03-09",
		"Total Students: 3",
		"Hall: Main Hall",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("first page missing %q:\n%s", want, joined)
		}
	}
	if doc.Pages[0].Lines[0].Style != StyleTitle {
		t.Error("first line should use the title style")
	}
}

func TestGroupRowsOrdersNumericallyAndSkipsEmptyRows(t *testing.T) {
	seats := []model.SeatAssignment{
		seat(10, 2, "B", "X"),
		seat(3, 4, "D", "X"),
		seat(2, 1, "A", "X"),
		seat(3, 1, "C", "X"),
		seat(10, 1, "E", "X"),
	}
	rows := GroupRows(seats)
	var nums []int
	for _, r := range rows {
		nums = append(nums, r.Number)
	}
	if !reflect.DeepEqual(nums, []int{2, 3, 10}) {
		t.Fatalf("row order = %v, want [2 3 10]", nums)
	}
	if got := rows[1].Lines(0); !reflect.DeepEqual(got, []string{"Row 3: [C-X] [D-X]"}) {
		t.Fatalf("row 3 = %q", got)
	}
	if got := rows[2].Lines(0); !reflect.DeepEqual(got, []string{"Row 10: [E-X] [B-X]"}) {
		t.Fatalf("row 10 = %q", got)
	}
}

func TestLayoutOnlyOccupiedRow(t *testing.T) {
	p := samplePlan()
	p.Arrangement[0].Seats = []model.SeatAssignment{seat(3, 2, "S9", "ME"), seat(3, 1, "S8", "EEE")}
	got := bodyLines(Layout(p, Options{}).Pages[0])
	if !reflect.DeepEqual(got, []string{"Row 3: [S8-EEE] [S9-ME]"}) {
		t.Fatalf("row lines = %q", got)
	}
}

func TestLayoutPageBreakPerHall(t *testing.T) {
	p := samplePlan()
	p.Arrangement = append(p.Arrangement,
		model.HallAllocation{HallID: 2, HallName: "Annex"},
		model.HallAllocation{HallID: 3, HallName: "Lab", Seats: []model.SeatAssignment{seat(1, 1, "S4", "IT")}},
	)
	doc := Layout(p, Options{})
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	if doc.Pages[0].Lines[0].Text != "Exam Seating Arrangement" {
		t.Error("header should open the first page")
	}
	annex := doc.Pages[1]
	if annex.Lines[0].Text != "Hall: Annex" || len(annex.Lines) != 1 {
		t.Errorf("empty hall page = %+v, want heading only", annex.Lines)
	}
	if doc.Pages[2].Lines[0].Text != "Hall: Lab" {
		t.Errorf("third page starts with %q", doc.Pages[2].Lines[0].Text)
	}
}

func TestLayoutContinuesLongHall(t *testing.T) {
	p := samplePlan()
	var seats []model.SeatAssignment
	for r := 1; r <= 30; r++ {
		seats = append(seats, seat(r, 1, "R", "D"))
	}
	p.Arrangement[0].Seats = seats

	doc := Layout(p, Options{LinesPerPage: 12})
	total := 0
	for i, pg := range doc.Pages {
		if len(pg.Lines) > 12 {
			t.Fatalf("page %d has %d lines", i, len(pg.Lines))
		}
		total += len(bodyLines(pg))
		if i > 0 && pg.Lines[0].Text != "Hall: Main Hall (continued)" {
			t.Errorf("page %d heading = %q", i, pg.Lines[0].Text)
		}
	}
	if total != 30 {
		t.Fatalf("rendered %d rows, want 30", total)
	}
}

func TestLayoutKeepsFirstHallHeadingWithItsRow(t *testing.T) {
	p := samplePlan()
	var seats []model.SeatAssignment
	for c := 1; c <= 9; c++ {
		seats = append(seats, seat(1, c, "S"+strconv.Itoa(c), "CSE"))
	}
	p.Arrangement[0].Seats = seats

	doc := Layout(p, Options{LinesPerPage: 10, MaxLineWidth: 40})
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	first := doc.Pages[0].Lines
	if last := first[len(first)-1]; last.Style == StyleHeading {
		t.Fatalf("first page ends with heading %q", last.Text)
	}
	second := doc.Pages[1].Lines
	if second[0].Text != "Hall: Main Hall" {
		t.Fatalf("second page starts with %q, want the plain hall heading", second[0].Text)
	}
	if rows := bodyLines(doc.Pages[1]); len(rows) != 1 || !strings.HasPrefix(rows[0], "Row 1: [S1-CSE]") {
		t.Fatalf("second page rows = %q", rows)
	}
}

func TestRowLinesWrap(t *testing.T) {
	r := Row{Number: 1, Seats: []model.SeatAssignment{
		seat(1, 1, "AAAA", "X"), seat(1, 2, "BBBB", "X"), seat(1, 3, "CCCC", "X"),
	}}
	got := r.Lines(24)
	want := []string{"Row 1: [AAAA-X] [BBBB-X]", "       [CCCC-X]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapped = %q, want %q", got, want)
	}
}

func TestLayoutDoesNotMutatePlan(t *testing.T) {
	p := samplePlan()
	p.Arrangement[0].Seats = []model.SeatAssignment{seat(2, 1, "B", "X"), seat(1, 1, "A", "X")}
	before := model.CloneArrangement(p.Arrangement)
	Layout(p, Options{})
	if !reflect.DeepEqual(before, p.Arrangement) {
		t.Fatal("layout reordered the plan's seats")
	}
}
