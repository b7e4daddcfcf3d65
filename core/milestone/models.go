package milestone

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

type Milestone struct {
	ID             int64       `json:"id" db:"id"`
	LearningPathID int64       `json:"learning_path_id" db:"learning_path_id"`
	DayNumber      int         `json:"day_number" db:"day_number"`
	Title          string      `json:"title" db:"title"`
	Description    string      `json:"description" db:"description"`
	IsCompleted    bool        `json:"is_completed" db:"is_completed"`
	CompletedAt    null.Time   `json:"completed_at" db:"completed_at"` // UTC
	Notes          null.String `json:"notes" db:"notes"`
}

// UpdateMilestone defines what may be provided to change a Milestone's completion.
// Notes are only overwritten when provided; an empty string clears them.
type UpdateMilestone struct {
	IsCompleted *bool   `json:"is_completed" validate:"required"`
	Notes       *string `json:"notes"`
}

func (um *UpdateMilestone) Validate(validate *validator.Validate) error {
	if um.Notes != nil {
		notes := core.CleanString(*um.Notes)
		um.Notes = &notes
	}
	return validate.Struct(um)
}
