package skill

import (
	"context"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

var (
	ErrNotFound = core.NewNotFoundError("skill")

	DefaultSuggestLimit = 6
	minSuggestRatio     = .5
)

type (
	Repository interface {
		CreateSkill(ctx context.Context, s Skill, exec ...core.DBExecutor) (Skill, error)
		// QuerySkills returns skills ordered by category then name. A nil filter returns them all.
		QuerySkills(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) ([]Skill, error)
		GetSkill(ctx context.Context, id int64, exec ...core.DBExecutor) (Skill, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ns NewSkill) (Skill, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Skill{}, err
	}
	s := Skill{
		Name:                  ns.Name,
		Description:           null.StringFromPtr(ns.Description),
		Category:              null.StringFromPtr(ns.Category),
		DifficultyLevel:       ns.DifficultyLevel,
		EstimatedDurationDays: ns.EstimatedDurationDays,
	}
	if s.DifficultyLevel == "" {
		s.DifficultyLevel = core.DifficultyBeginner
	}
	if s.EstimatedDurationDays == 0 {
		s.EstimatedDurationDays = DefaultDurationDays
	}
	return svc.repo.CreateSkill(ctx, s)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Skill, error) {
	if filter != nil {
		filter.Clean()
		if filter.IsEmpty() {
			filter = nil
		}
	}
	return svc.repo.QuerySkills(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Skill, error) {
	return svc.repo.GetSkill(ctx, id)
}

// Suggest ranks skills by how close their name is to `query`.
// Names containing the query come first, then the closest fuzzy matches.
func (svc *Service) Suggest(ctx context.Context, query string, limit int) ([]Skill, error) {
	query = core.CleanString(query, true /* lower */)
	if query == "" {
		return []Skill{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	skills, err := svc.repo.QuerySkills(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying skills")
	}

	type scored struct {
		skill Skill
		score float64
	}
	matches := make([]scored, 0, len(skills))
	for _, s := range skills {
		if score := suggestScore(query, s.Name); score >= minSuggestRatio {
			matches = append(matches, scored{skill: s, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if len(matches) > limit {
		matches = matches[:limit]
	}
	suggestions := make([]Skill, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.skill)
	}
	return suggestions, nil
}

// suggestScore is the similarity ratio of query and name, boosted by 1 when name contains the query.
func suggestScore(query, name string) float64 {
	name = strings.ToLower(name)
	ratio := difflib.NewMatcher(strings.Split(query, ""), strings.Split(name, "")).Ratio()
	if strings.Contains(name, query) {
		ratio++
	}
	return ratio
}
