package handlers

import (
	"sessionguard/helpers"
	"sessionguard/interfaces"
	"sessionguard/service"

	"github.com/labstack/echo/v4"
)

// contextKeySessionToken is the echo context key RequireSession stores the admitted token under.
const contextKeySessionToken = "sessionguard.session_token"

// MsgInvalidSession is the 401 message for requests without an acceptable session token.
const MsgInvalidSession = "missing or invalid session token"

// RequireSession returns middleware that admits a request only when validator accepts its session token.
// The token comes from the Authorization header (optional "Bearer " prefix) or the cookie named cookieName.
// A missing token is still handed to the validator, so the development bypass admits it.
//
// Returns: echo.MiddlewareFunc; rejected requests end with a 401 unauthorized APIError.
//
// Called from cmd/main through RegisterHandlers.
func RequireSession(validator interfaces.SessionValidator, cookieName string) echo.MiddlewareFunc {
	helpers.MustNotNil(validator, "handlers.middleware.go: SessionValidator is required")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := helpers.TokenFromRequest(c.Request(), cookieName)
			if !validator.ValidateToken(c.Request().Context(), token) {
				return service.NewUnauthorizedError(MsgInvalidSession, nil)
			}
			c.Set(contextKeySessionToken, token)
			return next(c)
		}
	}
}

// SessionToken returns the token admitted by RequireSession, or "" when there is none.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(contextKeySessionToken).(string)
	return token
}
