// Package allocator talks to the external seat allocation service.  The
// service receives the roster and the active halls and answers with one
// entry per hall it used; ids travel as decimal strings.
package allocator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/exam-seating-planner/internal/model"
)

// ErrMalformedResponse is returned when the service answers 200 with a
// body that does not describe an allocation.
var ErrMalformedResponse = errors.New("malformed allocator response")

type studentDTO struct {
	ID             string `json:"id"`
	RegisterNumber string `json:"registerNumber"`
	Name           string `json:"name"`
	Department     string `json:"department"`
}

type hallDTO struct {
	ID       string `json:"id"`
	HallName string `json:"hallName"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Capacity int    `json:"capacity"`
}

type allocateRequest struct {
	Students []studentDTO `json:"students"`
	Halls    []hallDTO    `json:"halls"`
}

type seatDTO struct {
	Row            int    `json:"row"`
	Column         int    `json:"column"`
	StudentID      string `json:"studentId"`
	RegisterNumber string `json:"registerNumber"`
	Name           string `json:"name"`
	Department     string `json:"department"`
}

type hallAllocationDTO struct {
	HallID   string    `json:"hallId"`
	HallName string    `json:"hallName"`
	Seats    []seatDTO `json:"seats"`
}

type allocateResponse struct {
	Allocation *[]hallAllocationDTO `json:"allocation"`
	Status     string               `json:"status"`
}

// Client calls POST {BaseURL}/allocate.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Allocate sends the roster and halls and converts the answer.  Halls are
// returned in the order the service listed them.
func (c *Client) Allocate(ctx context.Context, students []model.Student, halls []model.Hall) ([]model.HallAllocation, error) {
	payload, err := json.Marshal(toRequest(students, halls))
	if err != nil {
		return nil, fmt.Errorf("marshal allocate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/allocate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build allocate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("allocator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("allocator returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out allocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Allocation == nil {
		return nil, fmt.Errorf("%w: missing allocation", ErrMalformedResponse)
	}
	if out.Status != "" && !strings.EqualFold(out.Status, "success") {
		return nil, fmt.Errorf("allocator reported status %q", out.Status)
	}
	return fromResponse(*out.Allocation)
}

// Ping checks that the service answers on its root path.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("allocator returned status %d", resp.StatusCode)
	}
	return nil
}

func toRequest(students []model.Student, halls []model.Hall) allocateRequest {
	req := allocateRequest{
		Students: make([]studentDTO, len(students)),
		Halls:    make([]hallDTO, len(halls)),
	}
	for i, s := range students {
		req.Students[i] = studentDTO{
			ID:             strconv.FormatUint(s.ID, 10),
			RegisterNumber: s.RegisterNumber,
			Name:           s.Name,
			Department:     s.Department,
		}
	}
	for i, h := range halls {
		req.Halls[i] = hallDTO{
			ID:       strconv.FormatUint(h.ID, 10),
			HallName: h.Name,
			Rows:     h.Rows,
			Columns:  h.Columns,
			Capacity: h.Capacity,
		}
	}
	return req
}

func fromResponse(in []hallAllocationDTO) ([]model.HallAllocation, error) {
	out := make([]model.HallAllocation, 0, len(in))
	for i, a := range in {
		hallID, err := strconv.ParseUint(strings.TrimSpace(a.HallID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: allocation %d: hall id %q", ErrMalformedResponse, i, a.HallID)
		}
		ha := model.HallAllocation{HallID: hallID, HallName: a.HallName, Seats: make([]model.SeatAssignment, 0, len(a.Seats))}
		for j, s := range a.Seats {
			studentID, err := strconv.ParseUint(strings.TrimSpace(s.StudentID), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: hall %d seat %d: student id %q", ErrMalformedResponse, hallID, j, s.StudentID)
			}
			ha.Seats = append(ha.Seats, model.SeatAssignment{
				Row:            s.Row,
				Column:         s.Column,
				StudentID:      studentID,
				RegisterNumber: s.RegisterNumber,
				Name:           s.Name,
				Department:     s.Department,
			})
		}
		out = append(out, ha)
	}
	return out, nil
}
