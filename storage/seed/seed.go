// Package seed loads the prompt template catalog and starter skills into the database.
package seed

import (
	"context"
	_ "embed"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/autolearn/core/prompt"
	"github.com/trezcool/autolearn/core/skill"
)

//go:embed catalog.yaml
var defaultCatalog string

type (
	Skill struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Category    string `yaml:"category"`
		Difficulty  string `yaml:"difficulty"`
		Days        int    `yaml:"days"`
	}

	Catalog struct {
		Templates []prompt.Template `yaml:"templates"`
		Skills    []Skill           `yaml:"skills"`
	}

	// Result counts what Apply wrote.
	Result struct {
		Templates int
		Skills    int
	}
)

func (s Skill) newSkill() skill.NewSkill {
	ns := skill.NewSkill{
		Name:                  s.Name,
		DifficultyLevel:       s.Difficulty,
		EstimatedDurationDays: s.Days,
	}
	if s.Description != "" {
		ns.Description = &s.Description
	}
	if s.Category != "" {
		ns.Category = &s.Category
	}
	return ns
}

func Load(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, errors.Wrap(err, "decoding seed catalog")
	}
	return c, nil
}

// Default returns the catalog shipped with the binary.
func Default() (Catalog, error) {
	return Load(strings.NewReader(defaultCatalog))
}

// Apply upserts the catalog templates by name and creates the skills whose name is not taken yet.
func Apply(ctx context.Context, c Catalog, templateSvc *prompt.Service, skillSvc *skill.Service) (Result, error) {
	var res Result
	for _, t := range c.Templates {
		if _, err := templateSvc.Upsert(ctx, t); err != nil {
			return res, errors.Wrapf(err, "seeding template %q", t.TemplateName)
		}
		res.Templates++
	}

	existing, err := skillSvc.Query(ctx, nil)
	if err != nil {
		return res, errors.Wrap(err, "querying skills")
	}
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[strings.ToLower(s.Name)] = true
	}
	for _, s := range c.Skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if taken[name] {
			continue
		}
		if _, err = skillSvc.Create(ctx, s.newSkill()); err != nil {
			return res, errors.Wrapf(err, "seeding skill %q", s.Name)
		}
		taken[name] = true
		res.Skills++
	}
	return res, nil
}
