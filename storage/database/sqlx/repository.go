package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
)

type repository struct {
	exec core.DBExecutor
}

func (repo repository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

// insertReturningID runs an INSERT ... RETURNING id statement and returns the new id.
func (repo repository) insertReturningID(ctx context.Context, exe core.DBExecutor, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := exe.QueryRowxContext(ctx, exe.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// trapNoRowsErr maps sql "no rows" err to notFound
func trapNoRowsErr(err error, notFound error, msg string) error {
	switch {
	case err == sql.ErrNoRows:
		return notFound
	case errors.Is(err, sql.ErrConnDone):
		return core.NewShutdownError("database connection is done")
	}
	return errors.Wrap(err, msg)
}

// deleteOne runs a DELETE statement and maps "nothing deleted" to notFound.
func (repo repository) deleteOne(ctx context.Context, exe core.DBExecutor, notFound error, query string, args ...interface{}) error {
	res, err := exe.ExecContext(ctx, exe.Rebind(query), args...)
	if err != nil {
		return err
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if cnt == 0 {
		return notFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a LIKE pattern (ESCAPE '\') matching any string containing s.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
