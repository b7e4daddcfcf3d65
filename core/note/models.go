package note

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/autolearn/core"
)

type Note struct {
	ID             int64       `json:"id" db:"id"`
	LearningPathID int64       `json:"learning_path_id" db:"learning_path_id"`
	NoteText       string      `json:"note_text" db:"note_text"`
	Tags           null.String `json:"tags" db:"tags"`
	SourceURL      null.String `json:"source_url" db:"source_url"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"` // UTC
}

// NewNote contains information needed to create a new Note.
type NewNote struct {
	LearningPathID int64   `json:"learning_path_id" validate:"required"`
	NoteText       string  `json:"note_text" validate:"required"`
	Tags           *string `json:"tags"`
	SourceURL      *string `json:"source_url"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.NoteText = core.CleanString(nn.NoteText)
	nn.Tags = core.CleanStringPtr(nn.Tags)
	nn.SourceURL = core.CleanStringPtr(nn.SourceURL)
	return validate.Struct(nn)
}
