package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogspace/internal/errors"
	"blogspace/internal/model"
	"blogspace/internal/repository"
)

// ContextUserKey is the echo context key under which the authenticated
// user is stored.
const ContextUserKey = "current_user"

// CookieAuth returns middleware that rejects requests lacking a valid
// session token in the session cookie. Rejection happens before any
// record is fetched.
func CookieAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookie,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// LoadUser returns middleware that runs after CookieAuth: it checks the
// session still exists in the store (logout deletes it) and loads the
// acting user from the database so the role is always current.
func LoadUser(sessions SessionStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return unauthenticated()
			}

			ctx := c.Request().Context()
			userID, _, err := sessions.GetSession(ctx, claims.ID)
			if err != nil || userID != claims.UserID {
				return unauthenticated()
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				return unauthenticated()
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user placed in the context by
// LoadUser, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrUnauthenticated.Error(),
		Code:  "UNAUTHENTICATED",
	})
}
