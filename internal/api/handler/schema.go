package handler

import "github.com/jwtpizza/pizza-service/internal/core/domain"

// messageResponse is the body of successful commands and of every error.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// Presence of register fields is checked by the auth service so the message
// names all three at once.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type franchiseAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type createFranchiseRequest struct {
	Name   string                  `json:"name"   validate:"required"`
	Admins []franchiseAdminRequest `json:"admins" validate:"dive"`
}

// The store name is checked after the ownership check, in the service.
type createStoreRequest struct {
	Name string `json:"name"`
}

type menuItemRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

type orderItemRequest struct {
	MenuID      int64   `json:"menuId"      validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

type createOrderRequest struct {
	FranchiseID int64              `json:"franchiseId" validate:"required"`
	StoreID     int64              `json:"storeId"     validate:"required"`
	Items       []orderItemRequest `json:"items"       validate:"dive"`
}

type createOrderResponse struct {
	Order                *domain.Order `json:"order"`
	FollowLinkToEndChaos string        `json:"followLinkToEndChaos"`
	JWT                  string        `json:"jwt"`
}
