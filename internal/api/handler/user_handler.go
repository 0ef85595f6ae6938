package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the authenticated caller.
//
// @Summary      Get the authenticated user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  messageResponse
// @Router       /api/user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, id)
}

// Update changes a user's profile and returns a reissued token.
//
// @Summary      Update user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int                true  "User ID"
// @Param        body    body      updateUserRequest  true  "Profile changes"
// @Success      200     {object}  authResponse
// @Failure      401     {object}  messageResponse
// @Failure      403     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/user/{userId} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return domain.ErrUnknownUser
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.userService.Update(c.Request().Context(), actor, userID, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: res.User, Token: res.Token})
}

// Delete removes a user. Admin only.
//
// @Summary      Delete user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/user/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return domain.ErrUnknownUser
	}
	if err := h.userService.Delete(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

// List pages through users. Admin only.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int     false  "Page, 1-based"
// @Param        limit  query  int     false  "Rows per page, max 100"
// @Param        name   query  string  false  "Name filter, * is a wildcard"
// @Success      200  {object}  domain.UserPage
// @Failure      403  {object}  messageResponse
// @Router       /api/user [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit, name := pageParams(c)
	res, err := h.userService.List(c.Request().Context(), ports.ListUsersFilter{Page: page, Limit: limit, Name: name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *UserHandler) Docs() []EndpointDoc {
	user := map[string]any{"id": 1, "name": "常用名字", "email": "a@jwt.com", "roles": []map[string]string{{"role": "admin"}}}
	return []EndpointDoc{
		{
			Method:       http.MethodGet,
			Path:         "/api/user/me",
			RequiresAuth: true,
			Description:  "Get authenticated user",
			Example:      `curl -X GET localhost:3000/api/user/me -H 'Authorization: Bearer tttttt'`,
			Response:     user,
		},
		{
			Method:       http.MethodPut,
			Path:         "/api/user/:userId",
			RequiresAuth: true,
			Description:  "Update user",
			Example:      `curl -X PUT localhost:3000/api/user/1 -d '{"name":"常用名字", "email":"a@jwt.com", "password":"admin"}' -H 'Content-Type: application/json' -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{"user": user, "token": "tttttt"},
		},
		{
			Method:       http.MethodDelete,
			Path:         "/api/user/:userId",
			RequiresAuth: true,
			Description:  "Delete user",
			Example:      `curl -X DELETE localhost:3000/api/user/1 -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{},
		},
		{
			Method:       http.MethodGet,
			Path:         "/api/user?page=1&limit=10&name=*",
			RequiresAuth: true,
			Description:  "Gets a list of users",
			Example:      `curl -X GET localhost:3000/api/user -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{"users": []any{user}, "more": false},
		},
	}
}
