package main

import (
	"context"
	"os"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	logsvc "github.com/trezcool/autolearn/services/logger"
	"github.com/trezcool/autolearn/storage/cache"
	"github.com/trezcool/autolearn/storage/database"
	sqlxrepos "github.com/trezcool/autolearn/storage/database/sqlx"
)

func main() {
	conf := core.MustConfig()

	sugar, err := logsvc.NewZap("admin", conf)
	if err != nil {
		panic(err)
	}
	logger := logsvc.NewRollbarLogger(sugar, conf)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	// set up DB
	ctx := context.Background()
	if err = database.CreateIfNotExist(ctx, conf); err != nil {
		logger.Fatal("creating database", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer db.Close()
	if err = database.Ping(ctx, db); err != nil {
		logger.Fatal("pinging database", err)
	}

	// set up services
	validate := core.NewValidator(core.NewTranslator())
	rdb := cache.NewRedisClient(conf)
	if rdb != nil {
		defer rdb.Close()
	}
	templateRepo := cache.NewTemplateRepository(sqlxrepos.NewTemplateRepository(db), rdb, conf, logger)

	// start CLI
	cli := commandLine{
		db:          db,
		engine:      conf.Database.Engine,
		skillSvc:    skill.NewService(sqlxrepos.NewSkillRepository(db), validate),
		templateSvc: prompt.NewService(templateRepo, validate, conf),
		out:         os.Stdout,
	}
	if err = cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		logger.Close()
		os.Exit(1)
	}
}
