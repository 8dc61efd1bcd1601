package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Username (min 3 chars) and password (min 6 chars)"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	req, err := bindAuth(c)
	if err != nil {
		return err
	}

	userID, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Message: "User registered successfully",
		UserID:  userID,
	})
}

// Login checks a username and password. No session token is issued; the
// browser keeps the returned identity itself.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindAuth(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Username: user.Username,
		UserID:   user.ID,
	})
}

func bindAuth(c echo.Context) (authRequest, error) {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return req, domain.NewValidationError("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
