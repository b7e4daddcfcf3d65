package dig_container

import (
	"context"
	"fmt"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/autolearn/apps/api/echo"
	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
	"github.com/trezcool/autolearn/core/note"
	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	logsvc "github.com/trezcool/autolearn/services/logger"
	"github.com/trezcool/autolearn/storage/cache"
	"github.com/trezcool/autolearn/storage/database"
	sqlxrepos "github.com/trezcool/autolearn/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger *logsvc.RollbarLogger `name:"dbLogger"`
}

type ServerParam struct {
	dig.In
	Conf         *core.Config
	Logger       core.Logger
	Translator   ut.Translator
	SkillSvc     *skill.Service
	PathSvc      *learningpath.Service
	MilestoneSvc *milestone.Service
	NoteSvc      *note.Service
	PromptSvc    *prompt.Service
}

func newRollbarLogger(name string, conf *core.Config) (*logsvc.RollbarLogger, error) {
	sugar, err := logsvc.NewZap(name, conf)
	if err != nil {
		return nil, err
	}
	logger := logsvc.NewRollbarLogger(sugar, conf)
	logger.Enable(!conf.Debug)
	return logger, nil
}

func newLogger(conf *core.Config) (*logsvc.RollbarLogger, core.Logger, error) {
	logger, err := newRollbarLogger("api", conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger, nil
}

func newDBLogger(conf *core.Config) (*logsvc.RollbarLogger, error) {
	return newRollbarLogger("db", conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) (*sqlx.DB, core.DB, core.DBExecutor) {
	db, err := database.Setup(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db, db, db
}

func newTemplateRepository(exec core.DBExecutor, rdb *goredis.Client, conf *core.Config, logger core.Logger) prompt.Repository {
	return cache.NewTemplateRepository(sqlxrepos.NewTemplateRepository(exec), rdb, conf, logger)
}

func newServer(p ServerParam) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		Translator:   p.Translator,
		SkillSvc:     p.SkillSvc,
		PathSvc:      p.PathSvc,
		MilestoneSvc: p.MilestoneSvc,
		NoteSvc:      p.NoteSvc,
		PromptSvc:    p.PromptSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(cache.NewRedisClient))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))

	// repositories
	must(c.Provide(sqlxrepos.NewSkillRepository, dig.As(new(skill.Repository))))
	must(c.Provide(sqlxrepos.NewPathRepository, dig.As(new(learningpath.Repository))))
	must(c.Provide(sqlxrepos.NewMilestoneRepository, dig.As(new(milestone.Repository))))
	must(c.Provide(sqlxrepos.NewNoteRepository, dig.As(new(note.Repository))))
	must(c.Provide(newTemplateRepository))

	// services
	must(c.Provide(skill.NewService))
	must(c.Provide(learningpath.NewService))
	must(c.Provide(milestone.NewService))
	must(c.Provide(note.NewService))
	must(c.Provide(prompt.NewService))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
