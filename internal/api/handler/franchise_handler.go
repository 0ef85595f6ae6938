package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type FranchiseHandler struct {
	franchiseService ports.FranchiseService
}

func NewFranchiseHandler(franchiseService ports.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

// List pages through franchises. Anonymous callers are allowed.
//
// @Summary      List franchises
// @Tags         franchise
// @Produce      json
// @Param        page   query  int     false  "Page, 1-based"
// @Param        limit  query  int     false  "Rows per page, max 100"
// @Param        name   query  string  false  "Name filter, * is a wildcard"
// @Success      200  {object}  domain.FranchisePage
// @Router       /api/franchise [get]
func (h *FranchiseHandler) List(c echo.Context) error {
	var actor *domain.Identity
	if id, ok := middleware.IdentityFrom(c); ok {
		actor = &id
	}

	page, limit, name := pageParams(c)
	res, err := h.franchiseService.List(c.Request().Context(), actor, ports.ListFranchisesFilter{Page: page, Limit: limit, Name: name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// ListForUser returns the franchises a user administers.
//
// @Summary      List a user's franchises
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "User ID"
// @Success      200  {array}   domain.Franchise
// @Failure      401  {object}  messageResponse
// @Router       /api/franchise/{userId} [get]
func (h *FranchiseHandler) ListForUser(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusOK, []domain.Franchise{})
	}

	res, err := h.franchiseService.ListForUser(c.Request().Context(), actor, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Create adds a franchise. Admin only.
//
// @Summary      Create franchise
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFranchiseRequest  true  "Franchise"
// @Success      200   {object}  domain.Franchise
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/franchise [post]
func (h *FranchiseHandler) Create(c echo.Context) error {
	var req createFranchiseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	emails := make([]string, 0, len(req.Admins))
	for _, a := range req.Admins {
		emails = append(emails, a.Email)
	}

	f, err := h.franchiseService.Create(c.Request().Context(), ports.CreateFranchiseInput{Name: req.Name, AdminEmails: emails})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Delete removes a franchise with its stores.
//
// @Summary      Delete franchise
// @Tags         franchise
// @Produce      json
// @Param        franchiseId  path  int  true  "Franchise ID"
// @Success      200  {object}  messageResponse
// @Router       /api/franchise/{franchiseId} [delete]
func (h *FranchiseHandler) Delete(c echo.Context) error {
	if id, ok := pathID(c, "franchiseId"); ok {
		if err := h.franchiseService.Delete(c.Request().Context(), id); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "franchise deleted"})
}

// CreateStore opens a store in a franchise the caller manages.
//
// @Summary      Create store
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path      int                 true  "Franchise ID"
// @Param        body         body      createStoreRequest  true  "Store"
// @Success      200          {object}  domain.Store
// @Failure      401          {object}  messageResponse
// @Failure      403          {object}  messageResponse
// @Router       /api/franchise/{franchiseId}/store [post]
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	franchiseID, _ := pathID(c, "franchiseId")

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	store, err := h.franchiseService.CreateStore(c.Request().Context(), actor, franchiseID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore closes a store in a franchise the caller manages.
//
// @Summary      Delete store
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path  int  true  "Franchise ID"
// @Param        storeId      path  int  true  "Store ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/franchise/{franchiseId}/store/{storeId} [delete]
func (h *FranchiseHandler) DeleteStore(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	franchiseID, _ := pathID(c, "franchiseId")
	storeID, _ := pathID(c, "storeId")

	if err := h.franchiseService.DeleteStore(c.Request().Context(), actor, franchiseID, storeID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "store deleted"})
}

func (h *FranchiseHandler) Docs() []EndpointDoc {
	franchise := map[string]any{
		"id":     1,
		"name":   "pizzaPocket",
		"admins": []map[string]any{{"id": 4, "name": "pizza franchisee", "email": "f@jwt.com"}},
		"stores": []map[string]any{{"id": 1, "name": "SLC", "totalRevenue": 0}},
	}
	return []EndpointDoc{
		{
			Method:      http.MethodGet,
			Path:        "/api/franchise?page=0&limit=10&name=pizzaPocket",
			Description: "List all the franchises",
			Example:     `curl localhost:3000/api/franchise?page=0&limit=10&name=pizzaPocket`,
			Response:    map[string]any{"franchises": []any{map[string]any{"id": 1, "name": "pizzaPocket", "stores": []map[string]any{{"id": 1, "name": "SLC"}}}}, "more": true},
		},
		{
			Method:       http.MethodGet,
			Path:         "/api/franchise/:userId",
			RequiresAuth: true,
			Description:  "List a user's franchises",
			Example:      `curl localhost:3000/api/franchise/4 -H 'Authorization: Bearer tttttt'`,
			Response:     []any{franchise},
		},
		{
			Method:       http.MethodPost,
			Path:         "/api/franchise",
			RequiresAuth: true,
			Description:  "Create a new franchise",
			Example:      `curl -X POST localhost:3000/api/franchise -H 'Content-Type: application/json' -H 'Authorization: Bearer tttttt' -d '{"name": "pizzaPocket", "admins": [{"email": "f@jwt.com"}]}'`,
			Response:     map[string]any{"name": "pizzaPocket", "admins": []map[string]any{{"email": "f@jwt.com", "id": 4, "name": "pizza franchisee"}}, "id": 1},
		},
		{
			Method:      http.MethodDelete,
			Path:        "/api/franchise/:franchiseId",
			Description: "Delete a franchise",
			Example:     `curl -X DELETE localhost:3000/api/franchise/1 -H 'Authorization: Bearer tttttt'`,
			Response:    messageResponse{Message: "franchise deleted"},
		},
		{
			Method:       http.MethodPost,
			Path:         "/api/franchise/:franchiseId/store",
			RequiresAuth: true,
			Description:  "Create a new franchise store",
			Example:      `curl -X POST localhost:3000/api/franchise/1/store -H 'Content-Type: application/json' -d '{"franchiseId": 1, "name":"SLC"}' -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{"id": 1, "name": "SLC", "totalRevenue": 0},
		},
		{
			Method:       http.MethodDelete,
			Path:         "/api/franchise/:franchiseId/store/:storeId",
			RequiresAuth: true,
			Description:  "Delete a store",
			Example:      `curl -X DELETE localhost:3000/api/franchise/1/store/1 -H 'Authorization: Bearer tttttt'`,
			Response:     messageResponse{Message: "store deleted"},
		},
	}
}
