package learningpath_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/skill"
	sqlxrepos "github.com/trezcool/autolearn/storage/database/sqlx"
	"github.com/trezcool/autolearn/tests"
)

var errBoom = errors.New("boom")

// failingMilestoneRepo fails every milestone insert after storing the first batch.
type failingMilestoneRepo struct {
	milestone.Repository
}

func (repo failingMilestoneRepo) CreateMilestones(ctx context.Context, milestones []milestone.Milestone, exec ...core.DBExecutor) error {
	if err := repo.Repository.CreateMilestones(ctx, milestones[:1], exec...); err != nil {
		return err
	}
	return errBoom
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	validate := core.NewValidator(core.NewTranslator())

	skillRepo := sqlxrepos.NewSkillRepository(db)
	pathRepo := sqlxrepos.NewPathRepository(db)
	milestoneRepo := sqlxrepos.NewMilestoneRepository(db, conf)
	svc := learningpath.NewService(db, pathRepo, skillRepo, milestoneRepo, validate, conf)

	rust := testutil.CreateSkill(t, skillRepo, "Rust", "Programming")
	sPtr := func(s string) *string { return &s }

	tests := []struct {
		name           string
		np             learningpath.NewPath
		wantErr        func(error) bool
		wantDays       int
		wantMilestones int
	}{
		{
			name:    "title required",
			np:      learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "  "},
			wantErr: func(err error) bool { return err != nil && !core.IsNotFound(err) },
		},
		{
			name:    "session required",
			np:      learningpath.NewPath{SkillID: rust.ID, Title: "Learn Rust"},
			wantErr: func(err error) bool { return err != nil && !core.IsNotFound(err) },
		},
		{
			name:    "invalid query url",
			np:      learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "t", ExternalQueryURL: sPtr("nope")},
			wantErr: func(err error) bool { return err != nil && !core.IsNotFound(err) },
		},
		{
			name:    "unknown skill",
			np:      learningpath.NewPath{SkillID: 999, UserSession: "s", Title: "t"},
			wantErr: func(err error) bool { return err == skill.ErrNotFound },
		},
		{
			name:     "default days",
			np:       learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "Learn Rust"},
			wantDays: 30, wantMilestones: 30,
		},
		{
			name:     "custom days",
			np:       learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "Learn Rust", TotalDays: 3},
			wantDays: 3, wantMilestones: 3,
		},
		{
			name:     "negative days",
			np:       learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "Learn Rust", TotalDays: -5},
			wantDays: -5, wantMilestones: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testutil.CountRows(t, db, "learning_paths")
			milestones := testutil.CountRows(t, db, "milestones")

			p, err := svc.Create(ctx, tt.np)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Equal(t, paths, testutil.CountRows(t, db, "learning_paths"))
				assert.Equal(t, milestones, testutil.CountRows(t, db, "milestones"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, p.TotalDays)

			got, err := milestoneRepo.QueryMilestones(ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, got, tt.wantMilestones)
			for i, m := range got {
				assert.Equal(t, i+1, m.DayNumber)
			}
		})
	}
}

func TestService_Create_rollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	validate := core.NewValidator(core.NewTranslator())

	skillRepo := sqlxrepos.NewSkillRepository(db)
	pathRepo := sqlxrepos.NewPathRepository(db)
	milestoneRepo := failingMilestoneRepo{sqlxrepos.NewMilestoneRepository(db, conf)}
	svc := learningpath.NewService(db, pathRepo, skillRepo, milestoneRepo, validate, conf)

	rust := testutil.CreateSkill(t, skillRepo, "Rust", "Programming")

	_, err := svc.Create(ctx, learningpath.NewPath{SkillID: rust.ID, UserSession: "s", Title: "Learn Rust"})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, testutil.CountRows(t, db, "learning_paths"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "milestones"))
}

func TestService_Progress(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	validate := core.NewValidator(core.NewTranslator())

	skillRepo := sqlxrepos.NewSkillRepository(db)
	pathRepo := sqlxrepos.NewPathRepository(db)
	milestoneRepo := sqlxrepos.NewMilestoneRepository(db, conf)
	svc := learningpath.NewService(db, pathRepo, skillRepo, milestoneRepo, validate, conf)
	milestoneSvc := milestone.NewService(milestoneRepo, validate)

	rust := testutil.CreateSkill(t, skillRepo, "Rust", "Programming")
	p := testutil.CreatePath(t, pathRepo, milestoneRepo, rust.ID, "s", "Learn Rust", 10)

	milestones, err := milestoneRepo.QueryMilestones(ctx, p.ID)
	require.NoError(t, err)
	done := true
	for _, m := range milestones[:8] {
		_, err = milestoneSvc.SetCompletion(ctx, m.ID, milestone.UpdateMilestone{IsCompleted: &done})
		require.NoError(t, err)
	}

	prog, err := svc.Progress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, learningpath.Progress{
		LearningPathID:      p.ID,
		TotalMilestones:     10,
		CompletedMilestones: 8,
		Percentage:          80,
		CurrentWeek:         2,
	}, prog)

	_, err = svc.Progress(ctx, 999)
	assert.Equal(t, learningpath.ErrNotFound, err)
}
