package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

const userIDKey = "user_id"

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u api.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// requireAuth verifies the bearer token and stores the user id on the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if header == "" || raw == header {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		claims, err := s.parseToken(raw)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		c.Set(userIDKey, claims.UserID)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := s.store.User(currentUserID(c), s.now())
		if err != nil {
			return err
		}
		if !u.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (s *Server) login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	u, err := s.store.Authenticate(req.Email, req.Password, s.now())
	if err != nil {
		return err
	}
	return s.authResponse(c, u)
}

func (s *Server) register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email, username and password are required")
	}
	if len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}
	u, err := s.store.Register(req.Email, req.Password, req.Username, api.RoleTeacher)
	if err != nil {
		return err
	}
	return s.authResponse(c, u)
}

func (s *Server) authResponse(c echo.Context, u api.User) error {
	token, err := s.issueToken(u)
	if err != nil {
		return err
	}
	return success(c, envelope{"token": token, "user": u})
}

func (s *Server) me(c echo.Context) error {
	u, err := s.store.User(currentUserID(c), s.now())
	if err != nil {
		return err
	}
	return success(c, envelope{"user": u})
}
