package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core/milestone"
)

type milestoneApi struct {
	svc *milestone.Service
}

func registerMilestoneAPI(g *echo.Group, svc *milestone.Service) {
	api := milestoneApi{svc: svc}

	mg := g.Group("/milestones")
	mg.GET("", api.query)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
}

func (api *milestoneApi) query(ctx echo.Context) error {
	pathID, err := queryID(ctx, "learning_path_id")
	if err != nil {
		return err
	}
	milestones, err := api.svc.QueryByPath(ctx.Request().Context(), pathID)
	if err != nil {
		return errors.Wrap(err, "querying milestones")
	}
	return ctx.JSON(http.StatusOK, milestones)
}

func (api *milestoneApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	m, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting milestone")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *milestoneApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data milestone.UpdateMilestone
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMilestone")
	}
	m, err := api.svc.SetCompletion(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating milestone")
	}
	return ctx.JSON(http.StatusOK, m)
}
