// Package httpapi exposes the authentication and order workflows over HTTP.
// It owns status-code mapping for domain errors; services stay transport-free.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/logging"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/services"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	SignUp(ctx context.Context, in services.SignUpInput) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, email string) (*models.User, error)
}

// OrderService is the slice of the order service the handlers consume.
type OrderService interface {
	Create(ctx context.Context, in services.CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, []models.OrderLine, error)
}

// CatalogService is the slice of the catalog service the handlers consume.
type CatalogService interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type Handlers struct {
	Auth    AuthService
	Orders  OrderService
	Catalog CatalogService
	Log     logging.Logger
}

type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type createOrderRequest struct {
	Email         string `json:"email"`
	Address       string `json:"address"`
	TotalCost     int64  `json:"totalCost"`
	TotalDiscount int64  `json:"totalDiscount"`
	Products      []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"products"`
}

type orderLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	OrderDate     time.Time           `json:"orderDate"`
	Address       string              `json:"address"`
	TotalCost     int64               `json:"totalCost"`
	TotalDiscount int64               `json:"totalDiscount"`
	Lines         []orderLineResponse `json:"lines,omitempty"`
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.Auth.SignUp(r.Context(), services.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			writeError(w, http.StatusUnauthorized, "user already exists")
			return
		}
		h.Log.Error(r.Context(), "signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	token, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown user and wrong password produce the same response so the
		// caller cannot probe which emails are registered.
		if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrWrongPassword) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Log.Error(r.Context(), "signin failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	email, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.Auth.CurrentUser(r.Context(), email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error(r.Context(), "current-user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Email == "" || len(req.Products) == 0 {
		writeError(w, http.StatusBadRequest, "email and products are required")
		return
	}

	in := services.CreateOrderInput{
		BuyerEmail:         req.Email,
		Address:            req.Address,
		TotalCostCents:     req.TotalCost,
		TotalDiscountCents: req.TotalDiscount,
	}
	for _, p := range req.Products {
		in.Products = append(in.Products, services.ProductQuantity{ProductID: p.ID, Quantity: p.Quantity})
	}

	order, err := h.Orders.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "buyer not found")
		case errors.Is(err, common.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		default:
			h.Log.Error(r.Context(), "create order failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, orderView(order, nil))
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	order, lines, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.Log.Error(r.Context(), "get order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, orderView(order, lines))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	p, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error(r.Context(), "get product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
	})
}

func orderView(o *models.Order, lines []models.OrderLine) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		OrderDate:     o.OrderDate,
		Address:       o.Address,
		TotalCost:     o.TotalCostCents,
		TotalDiscount: o.TotalDiscountCents,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, orderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return resp
}
