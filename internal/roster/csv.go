// Package roster parses student roster uploads.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing roster column")
	// ErrInvalidRow is returned for a row without register number or subject.
	ErrInvalidRow = errors.New("invalid roster row")
)

// Columns are matched ignoring case, so both registerNumber and
// RegisterNumber are accepted.
var columns = [...]string{"registernumber", "name", "department", "subject"}

const (
	colRegister = iota
	colName
	colDepartment
	colSubject
)

// ParseCSV reads a roster with a header row.  Blank lines are skipped and
// every value is trimmed.  Columns other than the four known ones are
// ignored.
func ParseCSV(r io.Reader) ([]model.Student, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	out := []model.Student{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster: %w", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		s := model.Student{
			RegisterNumber: field(rec, idx[colRegister]),
			Name:           field(rec, idx[colName]),
			Department:     field(rec, idx[colDepartment]),
			Subject:        field(rec, idx[colSubject]),
		}
		if s.RegisterNumber == "" || s.Subject == "" {
			return nil, fmt.Errorf("%w: line %d needs registerNumber and subject", ErrInvalidRow, line)
		}
		out = append(out, s)
	}
	return out, nil
}

func headerIndex(header []string) ([len(columns)]int, error) {
	var idx [len(columns)]int
	for i := range idx {
		idx[i] = -1
	}
	for pos, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for i, want := range columns {
			if h == want && idx[i] < 0 {
				idx[i] = pos
			}
		}
	}
	for i, pos := range idx {
		if pos < 0 {
			return idx, fmt.Errorf("%w: %s", ErrMissingColumn, columns[i])
		}
	}
	return idx, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
