package domain

import (
	"math"
	"strconv"
	"time"
)

const (
	// CoordinateSlots is the fixed number of coordinate rows on the form.
	CoordinateSlots = 10

	// GeneratedFilename is the name under which the service's binary
	// response is offered for download.
	GeneratedFilename = "generated_document.docx"
)

// Fixed user-visible messages for the two failure modes that carry no
// message of their own.
const (
	MsgServerUnavailable = "server unavailable"
	MsgGenerationFailed  = "error generating document"
)

// CoordinatePair holds one (x, y) row of the manual input grid as the raw
// strings the user typed. A pair only contributes to a submission when both
// fields parse to finite numbers; anything else is silently skipped.
type CoordinatePair struct {
	X string
	Y string
}

// Values parses the pair. ok is false when either field is empty, fails to
// parse, or parses to an infinity or NaN.
func (p CoordinatePair) Values() (x, y float64, ok bool) {
	x, okX := finite(p.X)
	y, okY := finite(p.Y)
	if !okX || !okY {
		return 0, 0, false
	}
	return x, y, true
}

func finite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// FileAttachment is one user-selected upload held in memory until the
// submission is dispatched. Attachments are replaced whole, never edited
// in place.
type FileAttachment struct {
	Name    string
	Content []byte
}

// FormSnapshot is the immutable copy of form state taken at submit time.
// Edits made while a request is in flight never reach an already-captured
// snapshot.
type FormSnapshot struct {
	Description       string
	Coordinates       [CoordinateSlots]CoordinatePair
	Spreadsheet       *FileAttachment
	ReferenceDocument *FileAttachment
}

// CoordinateSource is the single coordinate input of a submission: either
// the manually entered pairs or an uploaded spreadsheet, never both.
type CoordinateSource interface {
	coordinateSource()
}

// ManualCoordinates carries the filtered [x, y] pairs, in grid order.
type ManualCoordinates [][2]float64

// UploadedSpreadsheet carries a spreadsheet whose parsing is deferred
// entirely to the generation service.
type UploadedSpreadsheet struct {
	File *FileAttachment
}

func (ManualCoordinates) coordinateSource()   {}
func (UploadedSpreadsheet) coordinateSource() {}

// SubmissionPayload is the exact set of fields transmitted to the
// generation endpoint for one attempt. It is built fresh per attempt and
// never retained for retry.
type SubmissionPayload struct {
	Description       string
	Source            CoordinateSource
	ReferenceDocument *FileAttachment
}

// GeneratedDocument is the binary artifact returned by the service.
type GeneratedDocument struct {
	Name    string
	Content []byte
}

// Attempt outcomes recorded in the history log.
const (
	OutcomeGenerated = "generated"
	OutcomeFailed    = "failed"
)

// Source kinds recorded in the history log.
const (
	SourceManual      = "manual"
	SourceSpreadsheet = "spreadsheet"
)

// AttemptRecord is one resolved submission attempt. Only the outcome is
// persisted; form state itself never survives a reload.
type AttemptRecord struct {
	ID          int64
	Description string
	SourceKind  string
	PairCount   int
	Outcome     string
	Message     string
	CreatedAt   time.Time
}
