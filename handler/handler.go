package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/model"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/service"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc service.ServiceInterface
	log *zap.Logger
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: s, log: log}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Auth
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")

	// Profile and wallet
	r.HandleFunc("/me", h.Me).Methods("GET")
	r.HandleFunc("/me/profile", h.UpdateProfile).Methods("PUT")
	r.HandleFunc("/me/pin", h.SetPin).Methods("POST")
	r.HandleFunc("/wallet/fund", h.FundWallet).Methods("POST")
	r.HandleFunc("/transactions", h.ListTransactions).Methods("GET")

	// Catalog
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	r.HandleFunc("/vendors", h.ListVendors).Methods("GET")
	r.HandleFunc("/vendors", h.RegisterVendor).Methods("POST")
	r.HandleFunc("/vendors/{id}/products", h.VendorProducts).Methods("GET")

	// Cart
	r.HandleFunc("/cart", h.ListCart).Methods("GET")
	r.HandleFunc("/cart", h.ClearCart).Methods("DELETE")
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/increment", h.IncrementLine).Methods("POST")
	r.HandleFunc("/cart/decrement", h.DecrementLine).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveLine).Methods("POST")
	r.HandleFunc("/likes", h.ListLikes).Methods("GET")
	r.HandleFunc("/likes/toggle", h.ToggleLike).Methods("POST")

	// Checkout
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")
}

// --- request / response shapes ---
type registerReq struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role,omitempty"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileReq struct {
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Pin         string `json:"pin,omitempty"`
}

type pinReq struct {
	Pin string `json:"pin"`
}

// amount is naira as a decimal string, e.g. "500" or "12.50"
type fundReq struct {
	Amount string `json:"amount"`
}

type vendorReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type productReq struct {
	ProductID string `json:"product_id"`
}

type checkoutReq struct {
	Method service.PaymentMethod `json:"method"`
	Pin    string                `json:"pin,omitempty"`
}

// userDTO never carries password or PIN hashes.
type userDTO struct {
	Email         string       `json:"email"`
	DisplayName   string       `json:"display_name"`
	Role          model.Role   `json:"role"`
	WalletBalance model.Amount `json:"wallet_balance"`
	Balance       string       `json:"balance"`
	HasPin        bool         `json:"has_pin"`
	Avatar        string       `json:"avatar,omitempty"`
	VendorID      string       `json:"vendor_id,omitempty"`
}

func toUserDTO(u model.User) userDTO {
	return userDTO{
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          u.Role,
		WalletBalance: u.WalletBalance,
		Balance:       u.WalletBalance.String(),
		HasPin:        u.HasPin(),
		Avatar:        u.Avatar,
		VendorID:      u.VendorID,
	}
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail writes err and reports true when the request should stop. A
// persistence failure is not a rejection: the change stands, so the
// caller carries on and the client sees a warning header.
func (h *Handler) fail(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	code := model.CodeOf(err)
	if code == model.CodePersistenceFailure {
		h.log.Warn("change not persisted", zap.Error(err))
		w.Header().Set("X-Persist-Warning", code.Message())
		return false
	}
	if code.HTTPStatus() >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, code.HTTPStatus(), map[string]string{"error": code.Message(), "code": string(code)})
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// --- Handler ---

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}
	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}
	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.fail(w, h.svc.Logout(r.Context())) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.svc.CurrentUser()
	if !ok {
		h.fail(w, model.ErrNotLoggedIn)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserDTO(u), "cart_count": h.svc.CartCount()})
}

// UpdateProfile handles PUT /me/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if !decode(w, r, &req) {
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), service.ProfileUpdate{
		DisplayName: req.DisplayName,
		AvatarBlob:  req.Avatar,
		Pin:         req.Pin,
	})
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (h *Handler) SetPin(w http.ResponseWriter, r *http.Request) {
	var req pinReq
	if !decode(w, r, &req) {
		return
	}
	if h.fail(w, h.svc.SetPin(r.Context(), req.Pin)) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pin set"})
}

// FundWallet handles POST /wallet/fund
// body: { "amount": "500.00" }
func (h *Handler) FundWallet(w http.ResponseWriter, r *http.Request) {
	var req fundReq
	if !decode(w, r, &req) {
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if h.fail(w, err) {
		return
	}
	tx, err := h.svc.FundWallet(r.Context(), amount)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// ListTransactions handles GET /transactions. Only the current user's
// ledger is served; ?email= naming anyone else is forbidden.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	u, ok := h.svc.CurrentUser()
	if !ok {
		h.fail(w, model.ErrNotLoggedIn)
		return
	}
	if email := r.URL.Query().Get("email"); email != "" && !strings.EqualFold(strings.TrimSpace(email), u.Email) {
		h.fail(w, model.ErrForbidden)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ListTransactions(u.Email))
}

// ListProducts handles GET /products?category=Shoes
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Products(r.URL.Query().Get("category")))
}

// DeleteProduct handles DELETE /products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if h.fail(w, h.svc.DeleteProduct(r.Context(), mux.Vars(r)["id"])) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Vendors())
}

// RegisterVendor handles POST /vendors
func (h *Handler) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorReq
	if !decode(w, r, &req) {
		return
	}
	v, err := h.svc.RegisterVendor(r.Context(), req.Name, req.Category)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) VendorProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ProductsByVendor(mux.Vars(r)["id"]))
}

// ListCart handles GET /cart
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	items, total := h.svc.CartView()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":     items,
		"count":     h.svc.CartCount(),
		"total":     total,
		"total_fmt": total.String(),
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if h.fail(w, h.svc.ClearCart(r.Context())) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// cartOp decodes a product_id body and applies op to it.
func (h *Handler) cartOp(w http.ResponseWriter, r *http.Request, status string, op func(r *http.Request, productID string) error) {
	var req productReq
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeErr(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if h.fail(w, op(r, req.ProductID)) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// AddToCart handles POST /cart/add
// body: { "product_id": "p1" }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.cartOp(w, r, "added", func(r *http.Request, id string) error { return h.svc.AddToCart(r.Context(), id) })
}

func (h *Handler) IncrementLine(w http.ResponseWriter, r *http.Request) {
	h.cartOp(w, r, "incremented", func(r *http.Request, id string) error { return h.svc.IncrementLine(r.Context(), id) })
}

func (h *Handler) DecrementLine(w http.ResponseWriter, r *http.Request) {
	h.cartOp(w, r, "decremented", func(r *http.Request, id string) error { return h.svc.DecrementLine(r.Context(), id) })
}

// RemoveLine handles POST /cart/remove
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.cartOp(w, r, "removed", func(r *http.Request, id string) error { return h.svc.RemoveLine(r.Context(), id) })
}

func (h *Handler) ListLikes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.LikedProducts())
}

// ToggleLike handles POST /likes/toggle
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !decode(w, r, &req) {
		return
	}
	liked, err := h.svc.ToggleLike(r.Context(), req.ProductID)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// Checkout handles POST /checkout/order
// body: { "method": "wallet", "pin": "1234" }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if !decode(w, r, &req) {
		return
	}
	tx, err := h.svc.Checkout(r.Context(), req.Method, req.Pin)
	if h.fail(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}
