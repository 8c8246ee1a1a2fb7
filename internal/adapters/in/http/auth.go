package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"agromarket/internal/core/domain/model/kernel"
)

// Roles carried inside access tokens. Buyers place and cancel orders,
// labourers claim and progress them, admins see everything.
const (
	RoleBuyer  = "buyer"
	RoleLabour = "labour"
	RoleAdmin  = "admin"
)

const principalContextKey = "principal"

// Claims is the JWT payload issued to marketplace users.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	ID   kernel.UUID
	Role string
}

// BuildJWT signs an access token for the given user. Mainly used by tests
// and local tooling; production tokens come from the identity service that
// shares the secret.
func BuildJWT(secret []byte, userID kernel.UUID, role string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        kernel.NewUUID().String(),
		},
	})

	return token.SignedString(secret)
}

func parseJWT(secret []byte, tokenString string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
	if err != nil {
		return Principal{}, fmt.Errorf("token error: %w", err)
	}
	if !token.Valid {
		return Principal{}, fmt.Errorf("token is not valid")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("token subject: %w", err)
	}

	return Principal{ID: id, Role: claims.Role}, nil
}

// AuthMiddleware validates the Bearer token and stores the resulting
// Principal in the request context. Handlers behind it can rely on
// principalFrom returning a valid principal.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authorization header is missing",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token format",
				})
			}

			principal, err := parseJWT(secret, tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose principal does not carry the given role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(principalContextKey).(Principal)
			if !ok || principal.Role != role {
				return c.JSON(http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "Access denied",
				})
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}
