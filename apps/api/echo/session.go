package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SessionResponse struct {
	UserSession string `json:"user_session"`
}

func registerSessionAPI(g *echo.Group) {
	g.POST("/sessions", createSession)
}

// createSession issues a new opaque session token. It identifies a client, it does not authenticate it.
func createSession(ctx echo.Context) error {
	return ctx.JSON(http.StatusCreated, SessionResponse{UserSession: uuid.NewString()})
}
