package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/model"
	"github.com/iliyamo/exam-seating-planner/internal/queue"
	"github.com/iliyamo/exam-seating-planner/internal/render"
	"github.com/iliyamo/exam-seating-planner/internal/repository"
	"github.com/iliyamo/exam-seating-planner/internal/seating"
	"github.com/iliyamo/exam-seating-planner/internal/utils"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func serve(e *echo.Echo, method, target, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ----- roster -----

type memStudents struct {
	rows     []model.Student
	countErr error
}

func (m *memStudents) ReplaceAll(_ context.Context, s []model.Student) (int, error) {
	m.rows = nil
	for i, st := range s {
		st.ID = uint64(i + 1)
		m.rows = append(m.rows, st)
	}
	return len(m.rows), nil
}

func (m *memStudents) List(context.Context) ([]model.Student, error) { return m.rows, nil }

func (m *memStudents) ListBySubject(_ context.Context, subject string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range m.rows {
		if strings.EqualFold(strings.TrimSpace(s.Subject), subject) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStudents) DeleteByID(_ context.Context, id uint64) error {
	for i, s := range m.rows {
		if s.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrStudentNotFound
}

func (m *memStudents) Count(context.Context) (int, error) { return len(m.rows), m.countErr }

// ----- halls -----

type memHalls struct {
	byID   map[uint64]*model.Hall
	nextID uint64
}

func newMemHalls(halls ...model.Hall) *memHalls {
	m := &memHalls{byID: map[uint64]*model.Hall{}}
	for _, h := range halls {
		h := h
		m.byID[h.ID] = &h
		if h.ID > m.nextID {
			m.nextID = h.ID
		}
	}
	return m
}

func (m *memHalls) nameTaken(name string, except uint64) bool {
	for id, h := range m.byID {
		if id != except && strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

func (m *memHalls) Create(_ context.Context, h *model.Hall) error {
	if m.nameTaken(h.Name, 0) {
		return repository.ErrDuplicate
	}
	m.nextID++
	h.ID = m.nextID
	cp := *h
	m.byID[h.ID] = &cp
	return nil
}

func (m *memHalls) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	h, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memHalls) List(context.Context) ([]model.Hall, error) {
	out := make([]model.Hall, 0, len(m.byID))
	for _, h := range m.byID {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHalls) ListActive(ctx context.Context) ([]model.Hall, error) {
	all, _ := m.List(ctx)
	var out []model.Hall
	for _, h := range all {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memHalls) Update(_ context.Context, h *model.Hall) error {
	if _, ok := m.byID[h.ID]; !ok {
		return repository.ErrHallNotFound
	}
	if m.nameTaken(h.Name, h.ID) {
		return repository.ErrDuplicate
	}
	cp := *h
	m.byID[h.ID] = &cp
	return nil
}

func (m *memHalls) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrHallNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memHalls) Count(context.Context) (int, error) { return len(m.byID), nil }

// ----- plans -----

type memPlans struct {
	byID  map[string]model.SeatingPlan
	order []string
}

func newMemPlans() *memPlans { return &memPlans{byID: map[string]model.SeatingPlan{}} }

func (m *memPlans) Create(_ context.Context, p *model.SeatingPlan) error {
	p.ID = fmt.Sprintf("plan-%d", len(m.order)+1)
	m.byID[p.ID] = *p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memPlans) GetByID(_ context.Context, id string) (*model.SeatingPlan, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}
	return &p, nil
}

func (m *memPlans) List(context.Context) ([]model.SeatingPlan, error) {
	out := make([]model.SeatingPlan, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.byID[m.order[i]])
	}
	return out, nil
}

func (m *memPlans) UpdateArrangement(_ context.Context, id string, arr []model.HallAllocation, total int) error {
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrPlanNotFound
	}
	p.Arrangement, p.TotalStudents = model.CloneArrangement(arr), total
	m.byID[id] = p
	return nil
}

func (m *memPlans) UpdateStatus(_ context.Context, id string, st model.PlanStatus) error {
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrPlanNotFound
	}
	p.Status = st
	m.byID[id] = p
	return nil
}

func (m *memPlans) Count(context.Context) (int, error) { return len(m.order), nil }

// rowMajor seats students row by row, filling each hall up to capacity.
type rowMajor struct{ err error }

func (a rowMajor) Allocate(_ context.Context, students []model.Student, halls []model.Hall) ([]model.HallAllocation, error) {
	if a.err != nil {
		return nil, a.err
	}
	var out []model.HallAllocation
	next := 0
	for _, h := range halls {
		alloc := model.HallAllocation{HallID: h.ID, HallName: h.Name}
		for i := 0; i < h.Capacity && next < len(students); i++ {
			s := students[next]
			next++
			alloc.Seats = append(alloc.Seats, model.SeatAssignment{
				Row: i/h.Columns + 1, Column: i%h.Columns + 1,
				StudentID: s.ID, RegisterNumber: s.RegisterNumber, Name: s.Name, Department: s.Department,
			})
		}
		out = append(out, alloc)
	}
	return out, nil
}

type recPublisher struct {
	events []queue.PlanEvent
	err    error
}

func (p *recPublisher) PublishPlanEvent(_ context.Context, ev queue.PlanEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type planFixture struct {
	students *memStudents
	halls    *memHalls
	plans    *memPlans
	events   *recPublisher
	handler  *PlanHandler
}

func newPlanFixture(alloc seating.Allocator) *planFixture {
	f := &planFixture{
		students: &memStudents{},
		halls:    newMemHalls(model.Hall{ID: 1, Name: "Hall A", Rows: 2, Columns: 2, Capacity: 4, IsActive: true}),
		plans:    newMemPlans(),
		events:   &recPublisher{},
	}
	for i := 1; i <= 3; i++ {
		f.students.rows = append(f.students.rows, model.Student{
			ID: uint64(i), RegisterNumber: fmt.Sprintf("S%d", i), Name: fmt.Sprintf("Student %d", i),
			Department: "CSE", Subject: "Maths",
		})
	}
	svc := seating.NewService(f.students, f.halls, f.plans, alloc, render.Options{})
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	f.handler = NewPlanHandler(svc, f.events)
	return f
}

// ----- auth -----

type memAdmins struct {
	byID   map[uint64]model.Admin
	nextID uint64
}

func newMemAdmins() *memAdmins { return &memAdmins{byID: map[uint64]model.Admin{}} }

func (m *memAdmins) Create(_ context.Context, username, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := m.GetByEmail(context.Background(), email); err == nil {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	m.nextID++
	m.byID[m.nextID] = model.Admin{ID: m.nextID, Username: username, Email: email, PasswordHash: hash}
	return m.nextID, nil
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (model.Admin, error) {
	for _, a := range m.byID {
		if a.Email == strings.ToLower(strings.TrimSpace(email)) {
			return a, nil
		}
	}
	return model.Admin{}, repository.ErrAdminNotFound
}

func (m *memAdmins) GetByID(_ context.Context, id uint64) (model.Admin, error) {
	a, ok := m.byID[id]
	if !ok {
		return model.Admin{}, repository.ErrAdminNotFound
	}
	return a, nil
}

type memTokens struct {
	owner   map[string]uint64
	revoked map[string]bool
}

func newMemTokens() *memTokens {
	return &memTokens{owner: map[string]uint64{}, revoked: map[string]bool{}}
}

func (m *memTokens) StoreRefresh(_ context.Context, adminID uint64, hash string, _ time.Time) error {
	m.owner[hash] = adminID
	return nil
}

func (m *memTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	id, ok := m.owner[hash]
	if !ok || m.revoked[hash] {
		return 0, repository.ErrRefreshInvalid
	}
	return id, nil
}

func (m *memTokens) RevokeByHash(_ context.Context, hash string) error {
	m.revoked[hash] = true
	return nil
}

func (m *memTokens) RevokeAllForAdmin(_ context.Context, adminID uint64) error {
	for h, id := range m.owner {
		if id == adminID {
			m.revoked[h] = true
		}
	}
	return nil
}

func newAuthedRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func serveReq(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
