package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core/note"
)

type noteApi struct {
	svc *note.Service
}

func registerNoteAPI(g *echo.Group, svc *note.Service) {
	api := noteApi{svc: svc}

	ng := g.Group("/notes")
	ng.GET("", api.query)
	ng.POST("", api.create)
	ng.DELETE("", api.destroy)
	ng.DELETE("/:id", api.destroy)
}

func (api *noteApi) query(ctx echo.Context) error {
	pathID, err := queryID(ctx, "learning_path_id")
	if err != nil {
		return err
	}
	notes, err := api.svc.QueryByPath(ctx.Request().Context(), pathID)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	n, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

// destroy deletes the note given either as `/notes/:id` or `/notes?id=`.
func (api *noteApi) destroy(ctx echo.Context) error {
	raw := ctx.Param("id")
	if raw == "" {
		raw = ctx.QueryParam("id")
	}
	id, err := parseID(raw, "id")
	if err != nil {
		return err
	}
	n, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.JSON(http.StatusOK, n)
}
