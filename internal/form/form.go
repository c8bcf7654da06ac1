// Package form owns the mutable state behind the coordinate form and its
// one pure derivation: the submission payload. Mutations happen field by
// field as input events arrive; Snapshot copies the whole state so an
// in-flight submission is isolated from further edits.
package form

import (
	"fmt"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// Axis selects which half of a coordinate pair a mutation targets.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// State holds the current user input: ten coordinate rows, a free-text
// description, and at most one spreadsheet and one reference document.
// A fresh State has every row empty and no attachments.
type State struct {
	description string
	coords      [domain.CoordinateSlots]domain.CoordinatePair
	spreadsheet *domain.FileAttachment
	reference   *domain.FileAttachment
}

func New() *State {
	return &State{}
}

// SetCoordinateField replaces one axis of one row, leaving every other row
// untouched. An out-of-range index or unknown axis is a programming error
// and panics.
func (s *State) SetCoordinateField(index int, axis Axis, value string) {
	if index < 0 || index >= domain.CoordinateSlots {
		panic(fmt.Sprintf("form: coordinate index %d out of range [0,%d)", index, domain.CoordinateSlots))
	}
	switch axis {
	case AxisX:
		s.coords[index].X = value
	case AxisY:
		s.coords[index].Y = value
	default:
		panic(fmt.Sprintf("form: unknown axis %q", axis))
	}
}

func (s *State) SetDescription(text string) {
	s.description = text
}

// SetSpreadsheetFile replaces the spreadsheet slot whole; nil clears it.
func (s *State) SetSpreadsheetFile(f *domain.FileAttachment) {
	s.spreadsheet = f
}

// SetReferenceDocument replaces the reference-document slot whole; nil
// clears it.
func (s *State) SetReferenceDocument(f *domain.FileAttachment) {
	s.reference = f
}

// Snapshot returns a value copy of the current state. It is pure and may
// be called any number of times; later mutations do not reach a snapshot
// already taken.
func (s *State) Snapshot() domain.FormSnapshot {
	return domain.FormSnapshot{
		Description:       s.description,
		Coordinates:       s.coords,
		Spreadsheet:       s.spreadsheet,
		ReferenceDocument: s.reference,
	}
}

// BuildPayload derives the transmittable payload from a snapshot. An
// uploaded spreadsheet wins outright over manually entered pairs: the two
// sources are mutually exclusive, not merged. Without a spreadsheet the
// manual rows are filtered down to the pairs where both fields parse as
// finite numbers, in grid order; invalid or partially filled rows are
// dropped without comment.
func BuildPayload(snap domain.FormSnapshot) domain.SubmissionPayload {
	p := domain.SubmissionPayload{
		Description:       snap.Description,
		ReferenceDocument: snap.ReferenceDocument,
	}
	if snap.Spreadsheet != nil {
		p.Source = domain.UploadedSpreadsheet{File: snap.Spreadsheet}
		return p
	}
	pairs := domain.ManualCoordinates{}
	for _, c := range snap.Coordinates {
		if x, y, ok := c.Values(); ok {
			pairs = append(pairs, [2]float64{x, y})
		}
	}
	p.Source = pairs
	return p
}
