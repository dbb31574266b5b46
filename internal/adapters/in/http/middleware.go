package http

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey stores the authenticated Actor in the echo context.
const actorContextKey = "actor"

// ErrNoActor is returned when a handler runs without the auth middleware
// having resolved an actor first.
var ErrNoActor = errors.New("no authenticated actor in request context")

// AuthMiddleware verifies the bearer token and resolves the caller into an
// Actor before any route handler runs. Session issuing lives in the account
// service; this side only verifies the shared-secret signature and reads
// the subject and role claims.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(ctx, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(ctx, "authorization header is not a bearer token")
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims,
				func(*jwt.Token) (any, error) { return secret, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				return unauthorized(ctx, "token verification failed")
			}

			caller, err := actorFromClaims(claims)
			if err != nil {
				return unauthorized(ctx, "token claims do not identify an actor")
			}

			ctx.Set(actorContextKey, caller)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) (actor.Actor, error) {
	subject, err := claims.GetSubject()
	if err != nil {
		return actor.Actor{}, err
	}
	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return actor.Actor{}, err
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return actor.Actor{}, errors.New("role claim is missing")
	}
	role, err := actor.RoleFromString(rawRole)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

// ActorFromContext returns the Actor resolved by the auth middleware.
func ActorFromContext(ctx echo.Context) (actor.Actor, error) {
	caller, ok := ctx.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, ErrNoActor
	}
	return caller, nil
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
