package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func multipartCSV(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "roster.csv")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte(content))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func studentEcho(store *memStudents) *echo.Echo {
	e := newEcho()
	h := NewStudentHandler(store)
	e.POST("/v1/students/upload", h.Upload)
	e.GET("/v1/students", h.List)
	e.DELETE("/v1/students/:id", h.Delete)
	return e
}

func TestStudentUploadReplacesRoster(t *testing.T) {
	store := &memStudents{}
	e := studentEcho(store)

	body, ct := multipartCSV(t, "RegisterNumber,Name,Department,Subject\nS1,Ann,CSE,Maths\nS2,Bob,ECE,Maths\n")
	req := httptest.NewRequest(http.MethodPost, "/v1/students/upload", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Count != 2 {
		t.Fatalf("resp = %s (%v)", rec.Body, err)
	}

	// a second upload overwrites the first
	rec = serve(e, http.MethodPost, "/v1/students/upload",
		"registerNumber,name,department,subject\nS9,Zed,ME,Physics\n", "text/csv")
	if rec.Code != http.StatusOK || len(store.rows) != 1 || store.rows[0].RegisterNumber != "S9" {
		t.Fatalf("overwrite failed: %d %+v", rec.Code, store.rows)
	}
}

func TestStudentUploadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name, body, ct string
	}{
		{"no file", `{}`, echo.MIMEApplicationJSON},
		{"missing column", "name,department,subject\nAnn,CSE,Maths\n", "text/csv"},
		{"row without register number", "registerNumber,name,department,subject\n,Ann,CSE,Maths\n", "text/csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStudents{}
			rec := serve(studentEcho(store), http.MethodPost, "/v1/students/upload", tt.body, tt.ct)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if len(store.rows) != 0 {
				t.Fatalf("roster written on bad input: %+v", store.rows)
			}
		})
	}
}

func TestStudentDelete(t *testing.T) {
	e := studentEcho(&memStudents{})

	if rec := serve(e, http.MethodDelete, "/v1/students/7", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing student: status = %d", rec.Code)
	}
	if rec := serve(e, http.MethodDelete, "/v1/students/abc", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d", rec.Code)
	}
}
