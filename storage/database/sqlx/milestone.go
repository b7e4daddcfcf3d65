package sqlxrepos

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/milestone"
)

const (
	milestoneColumns = "id, learning_path_id, day_number, title, description, is_completed, completed_at, notes"

	defaultBatchSize = 500
)

type milestoneRepository struct {
	repository
	batchSize int
}

var _ milestone.Repository = (*milestoneRepository)(nil) // interface compliance check

func NewMilestoneRepository(exec core.DBExecutor, conf *core.Config) *milestoneRepository {
	batchSize := conf.Paths.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &milestoneRepository{repository: repository{exec: exec}, batchSize: batchSize}
}

// CreateMilestones inserts milestones with multi-row INSERTs of at most batchSize rows each.
func (repo milestoneRepository) CreateMilestones(ctx context.Context, milestones []milestone.Milestone, exec ...core.DBExecutor) error {
	exe := repo.getExec(exec)
	for start := 0; start < len(milestones); start += repo.batchSize {
		end := start + repo.batchSize
		if end > len(milestones) {
			end = len(milestones)
		}
		batch := milestones[start:end]

		values := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*5)
		for _, m := range batch {
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, m.LearningPathID, m.DayNumber, m.Title, m.Description, m.IsCompleted)
		}
		query := "INSERT INTO milestones (learning_path_id, day_number, title, description, is_completed) VALUES " +
			strings.Join(values, ", ")
		if _, err := exe.ExecContext(ctx, exe.Rebind(query), args...); err != nil {
			return errors.Wrapf(err, "inserting milestones %d-%d", start+1, end)
		}
	}
	return nil
}

func (repo milestoneRepository) QueryMilestones(ctx context.Context, pathID int64, exec ...core.DBExecutor) ([]milestone.Milestone, error) {
	exe := repo.getExec(exec)
	milestones := make([]milestone.Milestone, 0)
	err := exe.SelectContext(
		ctx, &milestones,
		exe.Rebind("SELECT "+milestoneColumns+" FROM milestones WHERE learning_path_id = ? ORDER BY day_number, id"),
		pathID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting milestones")
	}
	for i := range milestones {
		normalizeMilestone(&milestones[i])
	}
	return milestones, nil
}

func (repo milestoneRepository) GetMilestone(ctx context.Context, id int64, exec ...core.DBExecutor) (milestone.Milestone, error) {
	exe := repo.getExec(exec)
	var m milestone.Milestone
	err := exe.GetContext(ctx, &m, exe.Rebind("SELECT "+milestoneColumns+" FROM milestones WHERE id = ?"), id)
	if err != nil {
		return milestone.Milestone{}, trapNoRowsErr(err, milestone.ErrNotFound, "selecting milestone")
	}
	normalizeMilestone(&m)
	return m, nil
}

func (repo milestoneRepository) UpdateCompletion(ctx context.Context, m milestone.Milestone, setNotes bool, exec ...core.DBExecutor) (milestone.Milestone, error) {
	exe := repo.getExec(exec)

	query := "UPDATE milestones SET is_completed = ?, completed_at = ?"
	args := []interface{}{m.IsCompleted, m.CompletedAt}
	if setNotes {
		query += ", notes = ?"
		args = append(args, m.Notes)
	}
	query += " WHERE id = ?"
	args = append(args, m.ID)

	res, err := exe.ExecContext(ctx, exe.Rebind(query), args...)
	if err != nil {
		return milestone.Milestone{}, errors.Wrap(err, "updating milestone")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return milestone.Milestone{}, errors.Wrap(err, "updating milestone")
	}
	if cnt == 0 {
		return milestone.Milestone{}, milestone.ErrNotFound
	}
	return repo.GetMilestone(ctx, m.ID, exe)
}

func normalizeMilestone(m *milestone.Milestone) {
	if m.CompletedAt.Valid {
		m.CompletedAt.Time = m.CompletedAt.Time.UTC()
	}
}
