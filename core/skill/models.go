package skill

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

const DefaultDurationDays = 30

type Skill struct {
	ID                    int64       `json:"id" db:"id"`
	Name                  string      `json:"name" db:"name"`
	Description           null.String `json:"description" db:"description"`
	Category              null.String `json:"category" db:"category"`
	DifficultyLevel       string      `json:"difficulty_level" db:"difficulty_level"`
	EstimatedDurationDays int         `json:"estimated_duration_days" db:"estimated_duration_days"`
}

// NewSkill contains information needed to create a new Skill.
type NewSkill struct {
	Name                  string  `json:"name" validate:"required"`
	Description           *string `json:"description"`
	Category              *string `json:"category"`
	DifficultyLevel       string  `json:"difficulty_level" validate:"omitempty,difficulty"`
	EstimatedDurationDays int     `json:"estimated_duration_days" validate:"omitempty,min=1"`
}

func (ns *NewSkill) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Description = core.CleanStringPtr(ns.Description)
	ns.Category = core.CleanStringPtr(ns.Category)
	ns.DifficultyLevel = core.CleanString(ns.DifficultyLevel, true /* lower */)
	return validate.Struct(ns)
}

type QueryFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Category == "" && qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Category = core.CleanString(qf.Category)
	qf.Search = core.CleanString(qf.Search)
}
