package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
	"github.com/Gwatamalou/DocGenerator/internal/form"
	"github.com/Gwatamalou/DocGenerator/internal/ports"
	"github.com/Gwatamalou/DocGenerator/internal/submit"
	"github.com/Gwatamalou/DocGenerator/internal/templates"
)

// maxUploadBytes bounds the in-memory portion of a parsed upload.
const maxUploadBytes = 32 << 20

const historyLimit = 10

type Handler struct {
	submitter ports.Submitter
	attempts  ports.AttemptRepository
}

func New(submitter ports.Submitter, attempts ports.AttemptRepository) *Handler {
	return &Handler{submitter: submitter, attempts: attempts}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /generate", h.generate)
	mux.HandleFunc("GET /attempts", h.attemptList)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.attempts.RecentAttempts(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.Index(templates.IndexData{Attempts: attempts}))
}

// generate decodes the browser form into form state, submits the snapshot,
// and either streams the document back as a download or re-renders the
// page carrying the one resolved message.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	st := form.New()
	st.SetDescription(r.FormValue("description"))
	for i := 0; i < domain.CoordinateSlots; i++ {
		st.SetCoordinateField(i, form.AxisX, r.FormValue(fmt.Sprintf("x_%d", i)))
		st.SetCoordinateField(i, form.AxisY, r.FormValue(fmt.Sprintf("y_%d", i)))
	}
	spreadsheet, err := formAttachment(r, "excel_file")
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	st.SetSpreadsheetFile(spreadsheet)
	reference, err := formAttachment(r, "pdf_file")
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	st.SetReferenceDocument(reference)

	doc, err := h.submitter.Submit(r.Context(), st.Snapshot())
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, submit.ErrSubmissionInFlight) {
			status = http.StatusTooManyRequests
		}
		h.renderNotice(w, r, submit.UserMessage(err), status)
		return
	}
	offerDownload(w, doc)
}

func (h *Handler) attemptList(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.attempts.RecentAttempts(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.AttemptList(attempts))
}

// renderNotice re-renders the page with the resolved failure message above
// the form.
func (h *Handler) renderNotice(w http.ResponseWriter, r *http.Request, msg string, status int) {
	attempts, err := h.attempts.RecentAttempts(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Index(templates.IndexData{Notice: msg, Attempts: attempts}).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

// offerDownload hands the document bytes to the browser's standard save
// mechanism under its fixed filename.
func offerDownload(w http.ResponseWriter, doc *domain.GeneratedDocument) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Name))
	w.Write(doc.Content)
}

// formAttachment reads one optional file part whole. Absence is not an
// error; it simply leaves the slot empty.
func formAttachment(r *http.Request, field string) (*domain.FileAttachment, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if len(content) == 0 && header.Filename == "" {
		// Some browsers send an empty part for an untouched file input.
		return nil, nil
	}
	return &domain.FileAttachment{Name: header.Filename, Content: content}, nil
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}
