package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/prompt"
)

const templateColumns = "id, template_name, template_type, prompt_text, placeholders"

type templateRepository struct {
	repository
}

var _ prompt.Repository = (*templateRepository)(nil) // interface compliance check

func NewTemplateRepository(exec core.DBExecutor) *templateRepository {
	return &templateRepository{repository{exec: exec}}
}

func (repo templateRepository) QueryTemplates(ctx context.Context, exec ...core.DBExecutor) ([]prompt.Template, error) {
	exe := repo.getExec(exec)
	templates := make([]prompt.Template, 0)
	err := exe.SelectContext(
		ctx, &templates,
		"SELECT "+templateColumns+" FROM prompt_templates ORDER BY template_type, template_name",
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting templates")
	}
	return templates, nil
}

func (repo templateRepository) GetTemplateByType(ctx context.Context, templateType string, exec ...core.DBExecutor) (prompt.Template, error) {
	exe := repo.getExec(exec)
	var t prompt.Template
	err := exe.GetContext(
		ctx, &t,
		exe.Rebind("SELECT "+templateColumns+" FROM prompt_templates WHERE template_type = ? ORDER BY id LIMIT 1"),
		templateType,
	)
	if err != nil {
		return prompt.Template{}, trapNoRowsErr(err, prompt.ErrNotFound, "selecting template")
	}
	return t, nil
}

func (repo templateRepository) UpsertTemplate(ctx context.Context, t prompt.Template, exec ...core.DBExecutor) (prompt.Template, error) {
	exe := repo.getExec(exec)
	if t.Placeholders == nil {
		t.Placeholders = prompt.Placeholders{}
	}
	id, err := repo.insertReturningID(
		ctx, exe,
		`INSERT INTO prompt_templates (template_name, template_type, prompt_text, placeholders)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (template_name) DO UPDATE SET
			template_type = excluded.template_type,
			prompt_text = excluded.prompt_text,
			placeholders = excluded.placeholders
		RETURNING id`,
		t.TemplateName, t.TemplateType, t.PromptText, t.Placeholders,
	)
	if err != nil {
		return prompt.Template{}, errors.Wrap(err, "upserting template")
	}

	var saved prompt.Template
	if err = exe.GetContext(ctx, &saved, exe.Rebind("SELECT "+templateColumns+" FROM prompt_templates WHERE id = ?"), id); err != nil {
		return prompt.Template{}, errors.Wrap(err, "selecting template")
	}
	return saved, nil
}
