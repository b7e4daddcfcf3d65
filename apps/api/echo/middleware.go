package echoapi

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/autolearn/core"
)

const (
	headerAdminToken = "X-Admin-Token"
	headerSession    = "X-User-Session"
)

// adminTokenMiddleware only lets requests carrying the admin token through.
// Every request passes when no token is configured.
func adminTokenMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if token == "" {
				return next(ctx)
			}
			given := ctx.Request().Header.Get(headerAdminToken)
			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) == 1 {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// contextPerson identifies the caller by the session it sent, if any.
func contextPerson(ctx echo.Context) core.Person {
	session := ctx.Request().Header.Get(headerSession)
	if session == "" {
		session = ctx.QueryParam("user_session")
	}
	return core.Person{Session: core.CleanString(session)}
}
