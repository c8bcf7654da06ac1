package ports

import (
	"context"

	"github.com/Gwatamalou/DocGenerator/internal/domain"
)

// DocumentGenerator is the outbound port to the remote generation service.
type DocumentGenerator interface {
	// Generate posts one payload and returns the binary document, or an
	// error already resolved to a single user-visible message.
	Generate(ctx context.Context, p domain.SubmissionPayload) (*domain.GeneratedDocument, error)
}

// Submitter drives one submission attempt at a time.
type Submitter interface {
	Submit(ctx context.Context, snap domain.FormSnapshot) (*domain.GeneratedDocument, error)
}

// AttemptRepository persists resolved attempt outcomes.
type AttemptRepository interface {
	RecordAttempt(ctx context.Context, a *domain.AttemptRecord) error
	RecentAttempts(ctx context.Context, limit int) ([]domain.AttemptRecord, error)
}
