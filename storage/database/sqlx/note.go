package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/note"
)

const noteColumns = "id, learning_path_id, note_text, tags, source_url, created_at"

type noteRepository struct {
	repository
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(exec core.DBExecutor) *noteRepository {
	return &noteRepository{repository{exec: exec}}
}

func (repo noteRepository) CreateNote(ctx context.Context, n note.Note, exec ...core.DBExecutor) (note.Note, error) {
	exe := repo.getExec(exec)
	id, err := repo.insertReturningID(
		ctx, exe,
		`INSERT INTO user_notes (learning_path_id, note_text, tags, source_url, created_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		n.LearningPathID, n.NoteText, n.Tags, n.SourceURL, n.CreatedAt.UTC(),
	)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return repo.GetNote(ctx, id, exe)
}

func (repo noteRepository) QueryNotes(ctx context.Context, pathID int64, exec ...core.DBExecutor) ([]note.Note, error) {
	exe := repo.getExec(exec)
	notes := make([]note.Note, 0)
	err := exe.SelectContext(
		ctx, &notes,
		exe.Rebind("SELECT "+noteColumns+" FROM user_notes WHERE learning_path_id = ? ORDER BY created_at DESC, id DESC"),
		pathID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting notes")
	}
	for i := range notes {
		notes[i].CreatedAt = notes[i].CreatedAt.UTC()
	}
	return notes, nil
}

func (repo noteRepository) GetNote(ctx context.Context, id int64, exec ...core.DBExecutor) (note.Note, error) {
	exe := repo.getExec(exec)
	var n note.Note
	err := exe.GetContext(ctx, &n, exe.Rebind("SELECT "+noteColumns+" FROM user_notes WHERE id = ?"), id)
	if err != nil {
		return note.Note{}, trapNoRowsErr(err, note.ErrNotFound, "selecting note")
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}

func (repo noteRepository) DeleteNote(ctx context.Context, id int64, exec ...core.DBExecutor) error {
	exe := repo.getExec(exec)
	if err := repo.deleteOne(ctx, exe, note.ErrNotFound, "DELETE FROM user_notes WHERE id = ?", id); err != nil {
		if err == note.ErrNotFound {
			return err
		}
		return errors.Wrap(err, "deleting note")
	}
	return nil
}
