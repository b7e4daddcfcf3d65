package learningpath

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/skill"
)

var (
	ErrNotFound = core.NewNotFoundError("learning path")

	errSessionRequired = "user session is required"

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreatePath(ctx context.Context, p LearningPath, exec ...core.DBExecutor) (LearningPath, error)
		// QueryPathsBySession returns the session's paths joined with their skill, newest first.
		QueryPathsBySession(ctx context.Context, session string, exec ...core.DBExecutor) ([]PathWithSkill, error)
		GetPath(ctx context.Context, id int64, exec ...core.DBExecutor) (LearningPath, error)
	}

	Service struct {
		db               core.DB
		repo             Repository
		skillRepo        skill.Repository
		milestoneRepo    milestone.Repository
		validate         *validator.Validate
		defaultTotalDays int
	}
)

func NewService(
	db core.DB,
	repo Repository,
	skillRepo skill.Repository,
	milestoneRepo milestone.Repository,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	defaultTotalDays := conf.Paths.DefaultTotalDays
	if defaultTotalDays <= 0 {
		defaultTotalDays = skill.DefaultDurationDays
	}
	return &Service{
		db:               db,
		repo:             repo,
		skillRepo:        skillRepo,
		milestoneRepo:    milestoneRepo,
		validate:         validate,
		defaultTotalDays: defaultTotalDays,
	}
}

func (svc *Service) QueryBySession(ctx context.Context, session string) ([]PathWithSkill, error) {
	session = core.CleanString(session)
	if session == "" {
		return nil, core.NewRequiredFieldError("user_session", errSessionRequired)
	}
	return svc.repo.QueryPathsBySession(ctx, session)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (LearningPath, error) {
	return svc.repo.GetPath(ctx, id)
}

// Create stores a new LearningPath and its daily milestones in one transaction:
// either the path and all its milestones are written, or nothing is.
func (svc *Service) Create(ctx context.Context, np NewPath) (LearningPath, error) {
	if err := np.Validate(svc.validate); err != nil {
		return LearningPath{}, err
	}
	if _, err := svc.skillRepo.GetSkill(ctx, np.SkillID); err != nil {
		return LearningPath{}, err
	}

	totalDays := np.TotalDays
	if totalDays == 0 {
		totalDays = svc.defaultTotalDays
	}
	p := LearningPath{
		SkillID:             np.SkillID,
		UserSession:         np.UserSession,
		Title:               np.Title,
		Description:         null.StringFromPtr(np.Description),
		TotalDays:           totalDays,
		ExternalQueryURL:    null.StringFromPtr(np.ExternalQueryURL),
		GeneratedPromptText: null.StringFromPtr(np.GeneratedPromptText),
		CreatedAt:           NowFunc().UTC(),
	}

	var created LearningPath
	err := core.WithTx(ctx, svc.db, func(tx core.DBExecutor) error {
		var err error
		if created, err = svc.repo.CreatePath(ctx, p, tx); err != nil {
			return err
		}
		if milestones := ExpandMilestones(created.ID, created.TotalDays); len(milestones) > 0 {
			if err = svc.milestoneRepo.CreateMilestones(ctx, milestones, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return LearningPath{}, errors.Wrap(err, "creating learning path")
	}
	return created, nil
}

func (svc *Service) Progress(ctx context.Context, id int64) (Progress, error) {
	if _, err := svc.repo.GetPath(ctx, id); err != nil {
		return Progress{}, err
	}
	milestones, err := svc.milestoneRepo.QueryMilestones(ctx, id)
	if err != nil {
		return Progress{}, errors.Wrap(err, "querying milestones")
	}
	return ComputeProgress(id, milestones), nil
}
