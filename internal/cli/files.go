package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// planFile accepts the plan JSON served by GET /v1/seating/:id, where
// exam_date is a plain date, as well as a raw model.SeatingPlan.
type planFile struct {
	model.SeatingPlan
	ExamDate string `json:"exam_date"`
}

func readPlan(path string) (*model.SeatingPlan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf planFile
	if err := json.Unmarshal(b, &pf); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", path, err)
	}
	p := pf.SeatingPlan
	if pf.ExamDate != "" {
		d, err := parseDate(pf.ExamDate)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", path, err)
		}
		p.ExamDate = d
	}
	return &p, nil
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("exam_date %q is neither YYYY-MM-DD nor RFC 3339", s)
	}
	return d.UTC(), nil
}

func readHalls(path string) ([]model.Hall, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var halls []model.Hall
	if err := json.Unmarshal(b, &halls); err != nil {
		return nil, fmt.Errorf("decode halls %s: %w", path, err)
	}
	return halls, nil
}

// readArrangement takes either a bare allocation array or an object with
// a seating_arrangement field (a plan or an override body).
func readArrangement(path string) ([]model.HallAllocation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var arr []model.HallAllocation
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &arr)
	} else {
		var wrapped struct {
			Arrangement      []model.HallAllocation `json:"seating_arrangement"`
			ArrangementCamel []model.HallAllocation `json:"seatingArrangement"`
		}
		err = json.Unmarshal(b, &wrapped)
		arr = wrapped.Arrangement
		if arr == nil {
			arr = wrapped.ArrangementCamel
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode arrangement %s: %w", path, err)
	}
	return arr, nil
}
