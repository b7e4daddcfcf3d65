package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core/prompt"
)

type promptApi struct {
	svc *prompt.Service
}

func registerPromptAPI(g *echo.Group, svc *prompt.Service) {
	api := promptApi{svc: svc}

	tg := g.Group("/prompt-templates")
	tg.GET("", api.query)
	tg.POST("", api.generate)
}

func (api *promptApi) query(ctx echo.Context) error {
	templates, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying templates")
	}
	return ctx.JSON(http.StatusOK, templates)
}

func (api *promptApi) generate(ctx echo.Context) error {
	var data prompt.GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	gen, err := api.svc.Generate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating prompt")
	}
	return ctx.JSON(http.StatusOK, gen)
}
