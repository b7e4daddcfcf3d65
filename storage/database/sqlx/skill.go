package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/skill"
)

const skillColumns = "id, name, description, category, difficulty_level, estimated_duration_days"

type skillRepository struct {
	repository
}

var _ skill.Repository = (*skillRepository)(nil) // interface compliance check

func NewSkillRepository(exec core.DBExecutor) *skillRepository {
	return &skillRepository{repository{exec: exec}}
}

func (repo skillRepository) CreateSkill(ctx context.Context, s skill.Skill, exec ...core.DBExecutor) (skill.Skill, error) {
	exe := repo.getExec(exec)
	id, err := repo.insertReturningID(
		ctx, exe,
		`INSERT INTO skills (name, description, category, difficulty_level, estimated_duration_days)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		s.Name, s.Description, s.Category, s.DifficultyLevel, s.EstimatedDurationDays,
	)
	if err != nil {
		return skill.Skill{}, errors.Wrap(err, "inserting skill")
	}
	return repo.GetSkill(ctx, id, exe)
}

func (repo skillRepository) QuerySkills(ctx context.Context, filter *skill.QueryFilter, exec ...core.DBExecutor) ([]skill.Skill, error) {
	var where []string
	var args []interface{}
	if filter != nil {
		if filter.Category != "" {
			where = append(where, "category = ?")
			args = append(args, filter.Category)
		}
		if filter.Search != "" {
			where = append(where, `LOWER(name) LIKE ? ESCAPE '\'`)
			args = append(args, containsPattern(strings.ToLower(filter.Search)))
		}
	}

	query := "SELECT " + skillColumns + " FROM skills"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category IS NULL, category, name, id"

	exe := repo.getExec(exec)
	skills := make([]skill.Skill, 0)
	if err := exe.SelectContext(ctx, &skills, exe.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "selecting skills")
	}
	return skills, nil
}

func (repo skillRepository) GetSkill(ctx context.Context, id int64, exec ...core.DBExecutor) (skill.Skill, error) {
	exe := repo.getExec(exec)
	var s skill.Skill
	err := exe.GetContext(ctx, &s, exe.Rebind("SELECT "+skillColumns+" FROM skills WHERE id = ?"), id)
	if err != nil {
		return skill.Skill{}, trapNoRowsErr(err, skill.ErrNotFound, "selecting skill")
	}
	return s, nil
}
