package tests

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	. "github.com/trezcool/autolearn/apps/api/echo"
	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/note"
	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	logsvc "github.com/trezcool/autolearn/services/logger"
	sqlxrepos "github.com/trezcool/autolearn/storage/database/sqlx"
	"github.com/trezcool/autolearn/tests"
)

const adminToken = "s3cr3t"

var (
	db            *sqlx.DB
	skillRepo     skill.Repository
	pathRepo      learningpath.Repository
	milestoneRepo milestone.Repository
	noteRepo      note.Repository
	templateRepo  prompt.Repository
)

func setup(t *testing.T, configure ...func(conf *core.Config)) *Server {
	conf := testutil.NewConfig()
	for _, fn := range configure {
		fn(conf)
	}

	// set up DB & repos
	db = testutil.PrepareDB(t)
	skillRepo = sqlxrepos.NewSkillRepository(db)
	pathRepo = sqlxrepos.NewPathRepository(db)
	milestoneRepo = sqlxrepos.NewMilestoneRepository(db, conf)
	noteRepo = sqlxrepos.NewNoteRepository(db)
	templateRepo = sqlxrepos.NewTemplateRepository(db)

	// set up services
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	logger := logsvc.NewRollbarLogger(zap.NewNop().Sugar(), conf)
	logger.Enable(false)

	// set up server
	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		Translator:   translator,
		SkillSvc:     skill.NewService(skillRepo, validate),
		PathSvc:      learningpath.NewService(db, pathRepo, skillRepo, milestoneRepo, validate, conf),
		MilestoneSvc: milestone.NewService(milestoneRepo, validate),
		NoteSvc:      note.NewService(noteRepo, pathRepo, validate),
		PromptSvc:    prompt.NewService(templateRepo, validate, conf),
	})
	return server
}
