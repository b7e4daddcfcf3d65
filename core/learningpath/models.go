package learningpath

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

type LearningPath struct {
	ID                  int64       `json:"id" db:"id"`
	SkillID             int64       `json:"skill_id" db:"skill_id"`
	UserSession         string      `json:"user_session" db:"user_session"`
	Title               string      `json:"title" db:"title"`
	Description         null.String `json:"description" db:"description"`
	TotalDays           int         `json:"total_days" db:"total_days"`
	ExternalQueryURL    null.String `json:"external_query_url" db:"external_query_url"`
	GeneratedPromptText null.String `json:"generated_prompt_text" db:"generated_prompt_text"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"` // UTC
}

// PathWithSkill is a LearningPath joined with a few fields of its Skill.
type PathWithSkill struct {
	LearningPath
	SkillName       string      `json:"skill_name" db:"skill_name"`
	Category        null.String `json:"category" db:"category"`
	DifficultyLevel string      `json:"difficulty_level" db:"difficulty_level"`
}

// NewPath contains information needed to create a new LearningPath.
// A zero TotalDays means the configured default (30).
type NewPath struct {
	SkillID             int64   `json:"skill_id" validate:"required"`
	UserSession         string  `json:"user_session" validate:"required"`
	Title               string  `json:"title" validate:"required"`
	Description         *string `json:"description"`
	TotalDays           int     `json:"total_days"`
	ExternalQueryURL    *string `json:"external_query_url" validate:"omitempty,url"`
	GeneratedPromptText *string `json:"generated_prompt_text"`
}

func (np *NewPath) Validate(validate *validator.Validate) error {
	np.UserSession = core.CleanString(np.UserSession)
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanStringPtr(np.Description)
	np.ExternalQueryURL = core.CleanStringPtr(np.ExternalQueryURL)
	np.GeneratedPromptText = core.CleanStringPtr(np.GeneratedPromptText)
	return validate.Struct(np)
}

// Progress summarizes how far a session is along a LearningPath.
type Progress struct {
	LearningPathID      int64 `json:"learning_path_id"`
	TotalMilestones     int   `json:"total_milestones"`
	CompletedMilestones int   `json:"completed_milestones"`
	Percentage          int   `json:"percentage"`
	CurrentWeek         int   `json:"current_week"`
}
