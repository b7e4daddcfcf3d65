package note

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
)

var (
	ErrNotFound = core.NewNotFoundError("note")

	errPathRequired = "learning path ID is required"

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note, exec ...core.DBExecutor) (Note, error)
		// QueryNotes returns the notes of a path, newest first.
		QueryNotes(ctx context.Context, pathID int64, exec ...core.DBExecutor) ([]Note, error)
		GetNote(ctx context.Context, id int64, exec ...core.DBExecutor) (Note, error)
		DeleteNote(ctx context.Context, id int64, exec ...core.DBExecutor) error
	}

	Service struct {
		repo     Repository
		pathRepo learningpath.Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, pathRepo learningpath.Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, pathRepo: pathRepo, validate: validate}
}

func (svc *Service) QueryByPath(ctx context.Context, pathID int64) ([]Note, error) {
	if pathID == 0 {
		return nil, core.NewRequiredFieldError("learning_path_id", errPathRequired)
	}
	return svc.repo.QueryNotes(ctx, pathID)
}

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	if err := nn.Validate(svc.validate); err != nil {
		return Note{}, err
	}
	if _, err := svc.pathRepo.GetPath(ctx, nn.LearningPathID); err != nil {
		return Note{}, err
	}
	return svc.repo.CreateNote(ctx, Note{
		LearningPathID: nn.LearningPathID,
		NoteText:       nn.NoteText,
		Tags:           null.StringFromPtr(nn.Tags),
		SourceURL:      null.StringFromPtr(nn.SourceURL),
		CreatedAt:      NowFunc().UTC(),
	})
}

// Delete removes a Note and returns it as it was before deletion.
func (svc *Service) Delete(ctx context.Context, id int64) (Note, error) {
	n, err := svc.repo.GetNote(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if err = svc.repo.DeleteNote(ctx, id); err != nil {
		return Note{}, err
	}
	return n, nil
}
