package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core/learningpath"
	"github.com/trezcool/autolearn/core/milestone"
)

type pathApi struct {
	svc          *learningpath.Service
	milestoneSvc *milestone.Service
}

func registerPathAPI(g *echo.Group, svc *learningpath.Service, milestoneSvc *milestone.Service) {
	api := pathApi{svc: svc, milestoneSvc: milestoneSvc}

	pg := g.Group("/learning-paths")
	pg.GET("", api.query)
	pg.POST("", api.create)

	// detail endpoints
	dg := pg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/milestones", api.milestones)
	dg.GET("/progress", api.progress)
}

func (api *pathApi) query(ctx echo.Context) error {
	paths, err := api.svc.QueryBySession(ctx.Request().Context(), ctx.QueryParam("user_session"))
	if err != nil {
		return errors.Wrap(err, "querying learning paths")
	}
	return ctx.JSON(http.StatusOK, paths)
}

func (api *pathApi) create(ctx echo.Context) error {
	var data learningpath.NewPath
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPath")
	}
	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating learning path")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *pathApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting learning path")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *pathApi) milestones(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "getting learning path")
	}
	milestones, err := api.milestoneSvc.QueryByPath(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying milestones")
	}
	return ctx.JSON(http.StatusOK, milestones)
}

func (api *pathApi) progress(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	prog, err := api.svc.Progress(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "computing progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}
