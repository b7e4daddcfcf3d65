package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	"github.com/trezcool/autolearn/storage/database"
	"github.com/trezcool/autolearn/storage/seed"
)

var (
	gooseRunFunc = goose.RunContext // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db          *sqlx.DB
	engine      string
	skillSvc    *skill.Service
	templateSvc *prompt.Service
	out         io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "AutoLearn administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(cli.migrateCmd(), cli.seedCmd(), cli.addSkillCmd())
	return root
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS]",
		Short: "Run a goose command against the database",
		Long: `Commands:
  up                   Migrate the DB to the most recent version available
  up-by-one            Migrate the DB up by 1
  up-to VERSION        Migrate the DB to a specific VERSION
  down                 Roll back the version by 1
  down-to VERSION      Roll back to a specific VERSION
  redo                 Re-run the latest migration
  reset                Roll back all migrations
  status               Dump the migration status for the current DB
  version              Print the current version of the database
  create NAME [sql|go] Creates new migration file with the current timestamp
  fix                  Apply sequential ordering to migrations`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			dir, err := database.PrepareMigrations(cli.engine)
			if err != nil {
				return err
			}
			return gooseRunFunc(cmd.Context(), args[0], cli.db.DB, dir, args[1:]...)
		},
	}
}

func (cli *commandLine) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert prompt templates and add the starter skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := cli.loadCatalog(file)
			if err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), catalog, cli.templateSvc, cli.skillSvc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d templates and %d skills\n", res.Templates, res.Skills)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the embedded one")
	return cmd
}

func (cli *commandLine) loadCatalog(file string) (seed.Catalog, error) {
	if file == "" {
		return seed.Default()
	}
	f, err := os.Open(file)
	if err != nil {
		return seed.Catalog{}, errors.Wrap(err, "opening seed catalog")
	}
	defer f.Close()
	return seed.Load(f)
}

func (cli *commandLine) addSkillCmd() *cobra.Command {
	var (
		ns                    skill.NewSkill
		description, category string
	)
	cmd := &cobra.Command{
		Use:   "addskill --name NAME",
		Short: "Add a skill to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ns.Name == "" {
				_ = cmd.Usage()
				return errHelp
			}
			if cmd.Flags().Changed("description") {
				ns.Description = &description
			}
			if cmd.Flags().Changed("category") {
				ns.Category = &category
			}
			s, err := cli.skillSvc.Create(cmd.Context(), ns)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created skill #%d %q\n", s.ID, s.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&ns.Name, "name", "", "the skill's name")
	cmd.Flags().StringVar(&description, "description", "", "a short description")
	cmd.Flags().StringVar(&category, "category", "", "the category it belongs to")
	cmd.Flags().StringVar(&ns.DifficultyLevel, "difficulty", "", "beginner, intermediate or advanced (default beginner)")
	cmd.Flags().IntVar(&ns.EstimatedDurationDays, "days", 0, "estimated duration in days (default 30)")
	return cmd
}

// run executes the command line args (including the program name).
func (cli *commandLine) run(ctx context.Context, args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}
