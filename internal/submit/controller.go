// Package submit drives one submission attempt at a time: payload
// construction, the network call, and outcome recording, with the
// in-flight flag guaranteed to clear on every path.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
	"github.com/Gwatamalou/DocGenerator/internal/form"
	"github.com/Gwatamalou/DocGenerator/internal/generator"
	"github.com/Gwatamalou/DocGenerator/internal/ports"
)

// ErrSubmissionInFlight is returned when a submit arrives while a previous
// one is still pending. The second attempt never issues a request.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Controller resolves each submission to exactly one terminal outcome:
// a generated document, or an error carrying one human-readable message.
type Controller struct {
	gen      ports.DocumentGenerator
	attempts ports.AttemptRepository
	inFlight atomic.Bool
}

func New(gen ports.DocumentGenerator, attempts ports.AttemptRepository) *Controller {
	return &Controller{gen: gen, attempts: attempts}
}

// InFlight reports whether a submission is currently pending.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Submit runs one attempt against the captured snapshot. Nothing is
// retried: the attempt either fully succeeds or fully fails, and the
// in-flight flag is cleared either way.
func (c *Controller) Submit(ctx context.Context, snap domain.FormSnapshot) (*domain.GeneratedDocument, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	payload := form.BuildPayload(snap)
	doc, err := c.gen.Generate(ctx, payload)
	c.record(ctx, payload, err)
	return doc, err
}

// record appends the resolved outcome to the attempt history. History is
// diagnostics only; a write failure is logged and does not change the
// outcome of the attempt itself.
func (c *Controller) record(ctx context.Context, payload domain.SubmissionPayload, outcome error) {
	a := &domain.AttemptRecord{
		Description: payload.Description,
		Outcome:     domain.OutcomeGenerated,
		CreatedAt:   time.Now(),
	}
	switch src := payload.Source.(type) {
	case domain.UploadedSpreadsheet:
		a.SourceKind = domain.SourceSpreadsheet
	case domain.ManualCoordinates:
		a.SourceKind = domain.SourceManual
		a.PairCount = len(src)
	}
	if outcome != nil {
		a.Outcome = domain.OutcomeFailed
		a.Message = UserMessage(outcome)
	}
	if err := c.attempts.RecordAttempt(ctx, a); err != nil {
		slog.Warn("could not record attempt", "err", err)
	}
}

// UserMessage maps any error coming out of Submit to the one string shown
// to the user.
func UserMessage(err error) string {
	if errors.Is(err, ErrSubmissionInFlight) {
		return ErrSubmissionInFlight.Error()
	}
	var genErr *generator.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return domain.MsgGenerationFailed
}
