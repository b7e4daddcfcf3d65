package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/skill"
)

var errInvalidLimit = "must be a non-negative integer"

type skillApi struct {
	svc *skill.Service
}

func registerSkillAPI(g *echo.Group, svc *skill.Service, admin echo.MiddlewareFunc) {
	api := skillApi{svc: svc}

	sg := g.Group("/skills")
	sg.GET("", api.query)
	sg.POST("", api.create, admin)
	sg.GET("/suggest", api.suggest)
	sg.GET("/:id", api.retrieve)
}

func (api *skillApi) query(ctx echo.Context) error {
	filter := new(skill.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	skills, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying skills")
	}
	return ctx.JSON(http.StatusOK, skills)
}

func (api *skillApi) create(ctx echo.Context) error {
	var data skill.NewSkill
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSkill")
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating skill")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *skillApi) suggest(ctx echo.Context) error {
	var limit int
	if raw := ctx.QueryParam("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return core.NewValidationError(
				errors.New("invalid limit"),
				core.FieldError{Field: "limit", Error: errInvalidLimit},
			)
		}
	}
	skills, err := api.svc.Suggest(ctx.Request().Context(), ctx.QueryParam("q"), limit)
	if err != nil {
		return errors.Wrap(err, "suggesting skills")
	}
	return ctx.JSON(http.StatusOK, skills)
}

func (api *skillApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting skill")
	}
	return ctx.JSON(http.StatusOK, s)
}
