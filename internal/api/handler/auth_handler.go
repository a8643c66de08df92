package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soundwolves/soundwolves-api/internal/api/metrics"
	"github.com/soundwolves/soundwolves-api/internal/api/middleware"
	"github.com/soundwolves/soundwolves-api/internal/core/domain"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
)

// AuthHandler serves the /auth endpoints. Errors are returned untouched and
// rendered by the API error handler.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest   true  "User registration details"
// @Success      201   {object}  domain.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) (err error) {
	defer observe("register", time.Now(), &err)

	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		UserType: req.UserType,
		DJName:   req.DJName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, pair)
}

// Login authenticates a user and returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) (err error) {
	defer observe("login", time.Now(), &err)

	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  domain.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) (err error) {
	defer observe("refresh", time.Now(), &err)

	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pair)
}

// Logout revokes every refresh token of the current user.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) (err error) {
	defer observe("logout", time.Now(), &err)

	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.ErrNotAuthenticated
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// Me returns the profile of the current user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserProfile
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) (err error) {
	defer observe("me", time.Now(), &err)

	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.ErrNotAuthenticated
	}

	return c.JSON(http.StatusOK, user.Profile())
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// observe records the outcome and latency of an auth operation.
func observe(operation string, start time.Time, err *error) {
	metrics.AuthOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	result := authResult(*err)
	if result == "locked" {
		metrics.AuthLockoutsTotal.Inc()
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}

func authResult(err error) string {
	var (
		ve *domain.ValidationError
		he *echo.HTTPError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve), errors.As(err, &he):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		return "unauthorized"
	default:
		return "error"
	}
}
