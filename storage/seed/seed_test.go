package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
	sqlxrepos "github.com/trezcool/autolearn/storage/database/sqlx"
	"github.com/trezcool/autolearn/tests"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	types := make(map[string]bool)
	for _, tmpl := range c.Templates {
		types[tmpl.TemplateType] = true
		assert.NotEmpty(t, tmpl.TemplateName)
		for _, p := range tmpl.Placeholders {
			assert.Contains(t, tmpl.PromptText, "{"+p+"}")
		}
	}
	for _, typ := range []string{prompt.TypeRoadmap, prompt.TypeAssignment, prompt.TypeResources, prompt.TypeProjects} {
		assert.True(t, types[typ], "missing %s template", typ)
	}
	assert.NotEmpty(t, c.Skills)
}

func TestLoad_unknownField(t *testing.T) {
	_, err := Load(strings.NewReader("skills:\n  - name: Go\n    level: hard\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	conf := testutil.NewConfig()
	validate := core.NewValidator(core.NewTranslator())

	skillRepo := sqlxrepos.NewSkillRepository(db)
	skillSvc := skill.NewService(skillRepo, validate)
	templateSvc := prompt.NewService(sqlxrepos.NewTemplateRepository(db), validate, conf)

	testutil.CreateSkill(t, skillRepo, "python", "Programming")

	c, err := Default()
	require.NoError(t, err)

	res, err := Apply(ctx, c, templateSvc, skillSvc)
	require.NoError(t, err)
	assert.Equal(t, len(c.Templates), res.Templates)
	assert.Equal(t, len(c.Skills)-1, res.Skills)

	// applying twice changes nothing
	res, err = Apply(ctx, c, templateSvc, skillSvc)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skills)
	assert.Equal(t, len(c.Templates), testutil.CountRows(t, db, "prompt_templates"))
	assert.Equal(t, len(c.Skills), testutil.CountRows(t, db, "skills"))

	gen, err := templateSvc.Generate(ctx, prompt.GenerateRequest{SkillName: "Rust", TemplateType: prompt.TypeRoadmap})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gen.GeneratedPrompt, "Create a detailed 30-day learning roadmap for Rust."))

	bad := Catalog{Skills: []Skill{{Name: "Go", Difficulty: "expert"}}}
	_, err = Apply(ctx, bad, templateSvc, skillSvc)
	assert.Error(t, err)
}
