package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
	"github.com/Gwatamalou/DocGenerator/internal/generator"
	"github.com/Gwatamalou/DocGenerator/internal/handlers"
	"github.com/Gwatamalou/DocGenerator/internal/submit"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSubmitter struct {
	snap domain.FormSnapshot
	doc  *domain.GeneratedDocument
	err  error
}

func (s *stubSubmitter) Submit(ctx context.Context, snap domain.FormSnapshot) (*domain.GeneratedDocument, error) {
	s.snap = snap
	return s.doc, s.err
}

type stubAttempts struct {
	records []domain.AttemptRecord
}

func (s *stubAttempts) RecordAttempt(ctx context.Context, a *domain.AttemptRecord) error {
	s.records = append(s.records, *a)
	return nil
}

func (s *stubAttempts) RecentAttempts(ctx context.Context, limit int) ([]domain.AttemptRecord, error) {
	return s.records, nil
}

// postForm builds a multipart POST /generate request from field values and
// optional named files.
func postForm(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".bin")
		if err != nil {
			t.Fatal(err)
		}
		part.Write(content)
	}
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/generate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(sub *stubSubmitter, attempts *stubAttempts, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handlers.New(sub, attempts).Routes().ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Page rendering
// ---------------------------------------------------------------------------

func TestIndexRendersForm(t *testing.T) {
	rec := serve(&stubSubmitter{}, &stubAttempts{}, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{`name="description"`, `name="x_0"`, `name="y_9"`, `name="excel_file"`, `name="pdf_file"`, `action="/generate"`} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %s", want)
		}
	}
}

func TestAttemptListFragment(t *testing.T) {
	attempts := &stubAttempts{records: []domain.AttemptRecord{
		{SourceKind: domain.SourceManual, PairCount: 3, Outcome: domain.OutcomeFailed, Message: "Invalid coordinates"},
	}}
	rec := serve(&stubSubmitter{}, attempts, httptest.NewRequest(http.MethodGet, "/attempts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid coordinates") {
		t.Fatal("fragment missing attempt message")
	}
}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

func TestGenerateDecodesFormIntoSnapshot(t *testing.T) {
	sub := &stubSubmitter{doc: &domain.GeneratedDocument{Name: domain.GeneratedFilename, Content: []byte("doc")}}
	req := postForm(t, map[string]string{
		"description": "test",
		"x_0":         "1", "y_0": "2",
		"x_7": "3", "y_7": "4",
	}, nil)
	serve(sub, &stubAttempts{}, req)

	if sub.snap.Description != "test" {
		t.Fatalf("description = %q", sub.snap.Description)
	}
	if sub.snap.Coordinates[0] != (domain.CoordinatePair{X: "1", Y: "2"}) {
		t.Fatalf("row 0 = %+v", sub.snap.Coordinates[0])
	}
	if sub.snap.Coordinates[7] != (domain.CoordinatePair{X: "3", Y: "4"}) {
		t.Fatalf("row 7 = %+v", sub.snap.Coordinates[7])
	}
	if sub.snap.Spreadsheet != nil || sub.snap.ReferenceDocument != nil {
		t.Fatal("attachments set without uploads")
	}
}

func TestGenerateDecodesUploads(t *testing.T) {
	sub := &stubSubmitter{doc: &domain.GeneratedDocument{Name: domain.GeneratedFilename}}
	req := postForm(t, nil, map[string][]byte{
		"excel_file": []byte("xlsx-bytes"),
		"pdf_file":   []byte("%PDF-stub"),
	})
	serve(sub, &stubAttempts{}, req)

	if sub.snap.Spreadsheet == nil || string(sub.snap.Spreadsheet.Content) != "xlsx-bytes" {
		t.Fatalf("spreadsheet = %+v", sub.snap.Spreadsheet)
	}
	if sub.snap.ReferenceDocument == nil || string(sub.snap.ReferenceDocument.Content) != "%PDF-stub" {
		t.Fatalf("reference document = %+v", sub.snap.ReferenceDocument)
	}
}

func TestGenerateOffersDownload(t *testing.T) {
	content := []byte{0x50, 0x4b, 0x03, 0x04}
	sub := &stubSubmitter{doc: &domain.GeneratedDocument{Name: domain.GeneratedFilename, Content: content}}
	rec := serve(sub, &stubAttempts{}, postForm(t, map[string]string{"x_0": "1", "y_0": "2"}, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="generated_document.docx"` {
		t.Fatalf("content disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("content type = %q", got)
	}
	body, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(body, content) {
		t.Fatalf("body = %v", body)
	}
}

func TestGenerateFailureShowsMessage(t *testing.T) {
	sub := &stubSubmitter{err: &generator.GenerationError{Message: "Invalid coordinates", StatusCode: 500}}
	rec := serve(sub, &stubAttempts{}, postForm(t, map[string]string{"x_0": "1", "y_0": "2"}, nil))

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Invalid coordinates") {
		t.Fatal("page missing failure message")
	}
}

func TestGenerateWhileInFlight(t *testing.T) {
	sub := &stubSubmitter{err: submit.ErrSubmissionInFlight}
	rec := serve(sub, &stubAttempts{}, postForm(t, nil, nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), submit.ErrSubmissionInFlight.Error()) {
		t.Fatal("page missing in-flight message")
	}
}
