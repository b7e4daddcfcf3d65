package prompt

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
)

// Template types seeded by default.
const (
	TypeRoadmap    = "roadmap"
	TypeAssignment = "assignment"
	TypeResources  = "resources"
	TypeProjects   = "projects"
)

const DefaultDuration = "30"

// Placeholders lists the tokens a Template expects. It is stored as a JSON array.
type Placeholders []string

func (p Placeholders) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Placeholders) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = Placeholders{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("cannot scan %T into Placeholders", src)
	}
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return errors.Wrap(err, "decoding placeholders")
	}
	if tokens == nil {
		tokens = []string{}
	}
	*p = tokens
	return nil
}

type Template struct {
	ID           int64        `json:"id" db:"id" yaml:"-"`
	TemplateName string       `json:"template_name" db:"template_name" yaml:"name" validate:"required"`
	TemplateType string       `json:"template_type" db:"template_type" yaml:"type" validate:"required"`
	PromptText   string       `json:"prompt_text" db:"prompt_text" yaml:"prompt" validate:"notblank"`
	Placeholders Placeholders `json:"placeholders" db:"placeholders" yaml:"placeholders"`
}

// Validate cleans the name and type. The prompt text is kept as written.
func (t *Template) Validate(validate *validator.Validate) error {
	t.TemplateName = core.CleanString(t.TemplateName)
	t.TemplateType = core.CleanString(t.TemplateType)
	return validate.Struct(t)
}

// Duration is a number of days sent either as a JSON string or a JSON number.
type Duration string

func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Duration(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("duration must be a string or a number")
	}
	*d = Duration(n.String())
	return nil
}

// GenerateRequest asks for a prompt built from the template of TemplateType.
type GenerateRequest struct {
	SkillName    string   `json:"skill_name" validate:"required"`
	TemplateType string   `json:"template_type" validate:"required"`
	CustomPrompt *string  `json:"custom_prompt"`
	Duration     Duration `json:"duration"`
}

func (gr *GenerateRequest) Validate(validate *validator.Validate) error {
	gr.SkillName = core.CleanString(gr.SkillName)
	gr.TemplateType = core.CleanString(gr.TemplateType)
	gr.CustomPrompt = core.CleanStringPtr(gr.CustomPrompt)
	gr.Duration = Duration(core.CleanString(string(gr.Duration)))
	if gr.Duration == "" {
		gr.Duration = DefaultDuration
	}
	return validate.Struct(gr)
}

type Generated struct {
	GeneratedPrompt string `json:"generated_prompt"`
	ExternalURL     string `json:"external_url"`
	TemplateType    string `json:"template_type"`
}

