package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
)

const pathColumns = `id, skill_id, user_session, title, description, total_days,
	external_query_url, generated_prompt_text, created_at`

type pathRepository struct {
	repository
}

var _ learningpath.Repository = (*pathRepository)(nil) // interface compliance check

func NewPathRepository(exec core.DBExecutor) *pathRepository {
	return &pathRepository{repository{exec: exec}}
}

func (repo pathRepository) CreatePath(ctx context.Context, p learningpath.LearningPath, exec ...core.DBExecutor) (learningpath.LearningPath, error) {
	exe := repo.getExec(exec)
	id, err := repo.insertReturningID(
		ctx, exe,
		`INSERT INTO learning_paths (skill_id, user_session, title, description, total_days,
			external_query_url, generated_prompt_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		p.SkillID, p.UserSession, p.Title, p.Description, p.TotalDays,
		p.ExternalQueryURL, p.GeneratedPromptText, p.CreatedAt.UTC(),
	)
	if err != nil {
		return learningpath.LearningPath{}, errors.Wrap(err, "inserting learning path")
	}
	return repo.GetPath(ctx, id, exe)
}

func (repo pathRepository) QueryPathsBySession(ctx context.Context, session string, exec ...core.DBExecutor) ([]learningpath.PathWithSkill, error) {
	exe := repo.getExec(exec)
	paths := make([]learningpath.PathWithSkill, 0)
	err := exe.SelectContext(ctx, &paths, exe.Rebind(`
		SELECT lp.id, lp.skill_id, lp.user_session, lp.title, lp.description, lp.total_days,
			lp.external_query_url, lp.generated_prompt_text, lp.created_at,
			s.name AS skill_name, s.category, s.difficulty_level
		FROM learning_paths lp
		JOIN skills s ON s.id = lp.skill_id
		WHERE lp.user_session = ?
		ORDER BY lp.created_at DESC, lp.id DESC`,
	), session)
	if err != nil {
		return nil, errors.Wrap(err, "selecting learning paths")
	}
	for i := range paths {
		paths[i].CreatedAt = paths[i].CreatedAt.UTC()
	}
	return paths, nil
}

func (repo pathRepository) GetPath(ctx context.Context, id int64, exec ...core.DBExecutor) (learningpath.LearningPath, error) {
	exe := repo.getExec(exec)
	var p learningpath.LearningPath
	err := exe.GetContext(ctx, &p, exe.Rebind("SELECT "+pathColumns+" FROM learning_paths WHERE id = ?"), id)
	if err != nil {
		return learningpath.LearningPath{}, trapNoRowsErr(err, learningpath.ErrNotFound, "selecting learning path")
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
