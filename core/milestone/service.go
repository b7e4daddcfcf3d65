package milestone

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

var (
	ErrNotFound = core.NewNotFoundError("milestone")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateMilestones inserts all milestones in as few statements as possible.
		// Callers wanting all-or-nothing semantics pass a transaction as exec.
		CreateMilestones(ctx context.Context, milestones []Milestone, exec ...core.DBExecutor) error
		QueryMilestones(ctx context.Context, pathID int64, exec ...core.DBExecutor) ([]Milestone, error)
		GetMilestone(ctx context.Context, id int64, exec ...core.DBExecutor) (Milestone, error)
		// UpdateCompletion writes is_completed, completed_at and, when set, notes.
		UpdateCompletion(ctx context.Context, m Milestone, setNotes bool, exec ...core.DBExecutor) (Milestone, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) QueryByPath(ctx context.Context, pathID int64) ([]Milestone, error) {
	return svc.repo.QueryMilestones(ctx, pathID)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Milestone, error) {
	return svc.repo.GetMilestone(ctx, id)
}

// SetCompletion marks a Milestone (in)complete. completed_at is set to now when completing
// and cleared otherwise; the write is unconditional so completing twice refreshes completed_at.
func (svc *Service) SetCompletion(ctx context.Context, id int64, um UpdateMilestone) (Milestone, error) {
	if err := um.Validate(svc.validate); err != nil {
		return Milestone{}, err
	}
	m := Milestone{ID: id}
	if um.IsCompleted != nil && *um.IsCompleted {
		m.IsCompleted = true
		m.CompletedAt = null.TimeFrom(NowFunc().UTC())
	}
	if um.Notes != nil {
		m.Notes = null.NewString(*um.Notes, *um.Notes != "")
	}
	return svc.repo.UpdateCompletion(ctx, m, um.Notes != nil)
}
