package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/note"
	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	"github.com/trezcool/autolearn/storage/database"
)

// NewConfig returns the config used by tests: an in-memory sqlite DB and no cache.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
		AppName:  "AutoLearn",
		Server: core.ServerConfig{
			DisableReqLogs:  true,
			ShutdownTimeout: time.Second,
		},
		Database: core.DatabaseConfig{Engine: core.EngineSQLite, Path: ":memory:"},
		Search:   core.SearchConfig{Endpoint: "https://www.perplexity.ai/search", QueryParam: "q"},
		Paths:    core.PathsConfig{DefaultTotalDays: 30, BatchSize: 500},
	}
}

// PrepareDB opens a fresh, migrated, in-memory database closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	goose.SetLogger(goose.NopLogger())

	conf := NewConfig()
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Migrate(context.Background(), db.DB, conf.Database.Engine); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func CreateSkill(t *testing.T, repo skill.Repository, name, category string, difficulty ...string) skill.Skill {
	t.Helper()
	s := skill.Skill{
		Name:                  name,
		Category:              null.NewString(category, category != ""),
		DifficultyLevel:       core.DifficultyBeginner,
		EstimatedDurationDays: skill.DefaultDurationDays,
	}
	if len(difficulty) > 0 {
		s.DifficultyLevel = difficulty[0]
	}
	s, err := repo.CreateSkill(context.Background(), s)
	if err != nil {
		t.Fatalf("CreateSkill() failed: %v", err)
	}
	return s
}

// CreatePath stores a LearningPath and its milestones.
func CreatePath(
	t *testing.T,
	repo learningpath.Repository,
	milestoneRepo milestone.Repository,
	skillID int64,
	session, title string,
	totalDays int,
	createdAt ...time.Time,
) learningpath.LearningPath {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p, err := repo.CreatePath(context.Background(), learningpath.LearningPath{
		SkillID:     skillID,
		UserSession: session,
		Title:       title,
		TotalDays:   totalDays,
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreatePath() failed: %v", err)
	}
	if err = milestoneRepo.CreateMilestones(context.Background(), learningpath.ExpandMilestones(p.ID, totalDays)); err != nil {
		t.Fatalf("CreatePath() failed: %v", err)
	}
	return p
}

func CreateNote(t *testing.T, repo note.Repository, pathID int64, text string, createdAt ...time.Time) note.Note {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	n, err := repo.CreateNote(context.Background(), note.Note{LearningPathID: pathID, NoteText: text, CreatedAt: tstamp})
	if err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	return n
}

func CreateTemplate(t *testing.T, repo prompt.Repository, name, templateType, text string, placeholders ...string) prompt.Template {
	t.Helper()
	tmpl, err := repo.UpsertTemplate(context.Background(), prompt.Template{
		TemplateName: name,
		TemplateType: templateType,
		PromptText:   text,
		Placeholders: placeholders,
	})
	if err != nil {
		t.Fatalf("CreateTemplate() failed: %v", err)
	}
	return tmpl
}

// CountRows returns the number of rows of table.
func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var cnt int
	if err := db.Get(&cnt, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("CountRows() failed: %v", err)
	}
	return cnt
}
