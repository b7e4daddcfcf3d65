package prompt

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/autolearn/core"
)

var (
	ErrNotFound = core.NewNotFoundError("template")

	defaultEndpoint   = "https://www.perplexity.ai/search"
	defaultQueryParam = "q"
)

type (
	Repository interface {
		// QueryTemplates returns all templates ordered by type then name.
		QueryTemplates(ctx context.Context, exec ...core.DBExecutor) ([]Template, error)
		// GetTemplateByType returns the oldest template of the given type.
		GetTemplateByType(ctx context.Context, templateType string, exec ...core.DBExecutor) (Template, error)
		// UpsertTemplate creates a template or replaces the one with the same name.
		UpsertTemplate(ctx context.Context, t Template, exec ...core.DBExecutor) (Template, error)
	}

	Service struct {
		repo       Repository
		validate   *validator.Validate
		endpoint   string
		queryParam string
	}
)

func NewService(repo Repository, validate *validator.Validate, conf *core.Config) *Service {
	svc := &Service{
		repo:       repo,
		validate:   validate,
		endpoint:   conf.Search.Endpoint,
		queryParam: conf.Search.QueryParam,
	}
	if svc.endpoint == "" {
		svc.endpoint = defaultEndpoint
	}
	if svc.queryParam == "" {
		svc.queryParam = defaultQueryParam
	}
	return svc
}

func (svc *Service) Query(ctx context.Context) ([]Template, error) {
	return svc.repo.QueryTemplates(ctx)
}

// Generate renders the template of the requested type for a skill and links it to the search engine.
func (svc *Service) Generate(ctx context.Context, gr GenerateRequest) (Generated, error) {
	if err := gr.Validate(svc.validate); err != nil {
		return Generated{}, err
	}
	tmpl, err := svc.repo.GetTemplateByType(ctx, gr.TemplateType)
	if err != nil {
		return Generated{}, err
	}
	text := Render(tmpl.PromptText, gr.TemplateType, gr.SkillName, gr.Duration, gr.CustomPrompt)
	return Generated{
		GeneratedPrompt: text,
		ExternalURL:     DeepLink(svc.endpoint, svc.queryParam, text),
		TemplateType:    gr.TemplateType,
	}, nil
}

// Upsert creates a template or replaces the one with the same name.
func (svc *Service) Upsert(ctx context.Context, t Template) (Template, error) {
	if err := t.Validate(svc.validate); err != nil {
		return Template{}, err
	}
	return svc.repo.UpsertTemplate(ctx, t)
}
