package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Menu returns the pizza menu.
//
// @Summary      Get the menu
// @Tags         order
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /api/order/menu [get]
func (h *OrderHandler) Menu(c echo.Context) error {
	menu, err := h.orderService.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// AddMenuItem adds a pizza to the menu. Admin only.
//
// @Summary      Add menu item
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {array}   domain.MenuItem
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/order/menu [put]
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menu, err := h.orderService.AddMenuItem(c.Request().Context(), domain.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// Orders returns a page of the caller's orders.
//
// @Summary      List the caller's orders
// @Tags         order
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page, 1-based"
// @Success      200  {object}  domain.OrderPage
// @Failure      401  {object}  messageResponse
// @Router       /api/order [get]
func (h *OrderHandler) Orders(c echo.Context) error {
	diner, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	res, err := h.orderService.Orders(c.Request().Context(), diner, pageParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Create places an order and forwards it to the factory.
//
// @Summary      Create order
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      200   {object}  createOrderResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/order [post]
func (h *OrderHandler) Create(c echo.Context) error {
	diner, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{MenuID: it.MenuID, Description: it.Description, Price: it.Price})
	}

	receipt, err := h.orderService.Create(c.Request().Context(), diner, ports.CreateOrderInput{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       items,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createOrderResponse{
		Order:                receipt.Order,
		FollowLinkToEndChaos: receipt.ReportURL,
		JWT:                  receipt.JWT,
	})
}

func (h *OrderHandler) Docs() []EndpointDoc {
	veggie := map[string]any{"id": 1, "title": "Veggie", "image": "pizza1.png", "price": 0.0038, "description": "A garden of delight"}
	order := map[string]any{
		"franchiseId": 1,
		"storeId":     1,
		"items":       []map[string]any{{"menuId": 1, "description": "Veggie", "price": 0.05}},
		"id":          1,
	}
	return []EndpointDoc{
		{
			Method:      http.MethodGet,
			Path:        "/api/order/menu",
			Description: "Get the pizza menu",
			Example:     `curl localhost:3000/api/order/menu`,
			Response:    []any{veggie},
		},
		{
			Method:       http.MethodPut,
			Path:         "/api/order/menu",
			RequiresAuth: true,
			Description:  "Add an item to the menu",
			Example:      `curl -X PUT localhost:3000/api/order/menu -H 'Content-Type: application/json' -d '{ "title":"Student", "description": "No topping, no sauce, just carbs", "image":"pizza9.png", "price": 0.0001 }'  -H 'Authorization: Bearer tttttt'`,
			Response:     []any{map[string]any{"id": 1, "title": "Student", "description": "No topping, no sauce, just carbs", "image": "pizza9.png", "price": 0.0001}},
		},
		{
			Method:       http.MethodGet,
			Path:         "/api/order",
			RequiresAuth: true,
			Description:  "Get the orders for the authenticated user",
			Example:      `curl -X GET localhost:3000/api/order  -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{"dinerId": 4, "orders": []any{order}, "page": 1},
		},
		{
			Method:       http.MethodPost,
			Path:         "/api/order",
			RequiresAuth: true,
			Description:  "Create a order for the authenticated user",
			Example:      `curl -X POST localhost:3000/api/order -H 'Content-Type: application/json' -d '{"franchiseId": 1, "storeId":1, "items":[{ "menuId": 1, "description": "Veggie", "price": 0.05 }]}'  -H 'Authorization: Bearer tttttt'`,
			Response:     map[string]any{"order": order, "followLinkToEndChaos": "https://pizza-factory.cs329.click/report/1", "jwt": "1111111111"},
		},
	}
}
