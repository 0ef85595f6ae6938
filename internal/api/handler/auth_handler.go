package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a diner account and returns it with a session token.
//
// @Summary      Register a new diner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/auth [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: res.User, Token: res.Token})
}

// Login checks credentials and opens a new session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/auth [put]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: res.User, Token: res.Token})
}

// Logout revokes the caller's token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/auth [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

func (h *AuthHandler) Docs() []EndpointDoc {
	user := map[string]any{"id": 2, "name": "pizza diner", "email": "d@jwt.com", "roles": []map[string]string{{"role": "diner"}}}
	return []EndpointDoc{
		{
			Method:      http.MethodPost,
			Path:        "/api/auth",
			Description: "Register a new user",
			Example:     `curl -X POST localhost:3000/api/auth -d '{"name":"pizza diner", "email":"d@jwt.com", "password":"diner"}' -H 'Content-Type: application/json'`,
			Response:    map[string]any{"user": user, "token": "tttttt"},
		},
		{
			Method:      http.MethodPut,
			Path:        "/api/auth",
			Description: "Login existing user",
			Example:     `curl -X PUT localhost:3000/api/auth -d '{"email":"a@jwt.com", "password":"admin"}' -H 'Content-Type: application/json'`,
			Response:    map[string]any{"user": user, "token": "tttttt"},
		},
		{
			Method:       http.MethodDelete,
			Path:         "/api/auth",
			RequiresAuth: true,
			Description:  "Logout a user",
			Example:      `curl -X DELETE localhost:3000/api/auth -H 'Authorization: Bearer tttttt'`,
			Response:     messageResponse{Message: "logout successful"},
		},
	}
}
