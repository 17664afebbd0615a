package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/session"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/workflow"
	"github.com/go-chi/chi/v5"
)

// StorefrontHandler serves the storefront screens' JSON API. Each request
// gets its own Session and Workflow; the Board and event sink are shared.
type StorefrontHandler struct {
	API        Backend
	Stores     StoreFactory
	Board      *orders.Board
	Events     workflow.Events
	Cookie     string
	SessionTTL time.Duration
	Service    string
	Log        *slog.Logger
	Now        func() time.Time
}

func (h *StorefrontHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
		r.Get("/session", h.current)

		r.Get("/products", h.products)
		r.Get("/products/search", h.searchProducts)
		r.Get("/products/{id}", h.product)

		r.Get("/cart", h.cart)
		r.Post("/cart/items", h.addToCart)
		r.Patch("/cart/items/{id}", h.adjustQuantity)
		r.Delete("/cart/items/{id}", h.removeFromCart)

		r.Post("/orders", h.placeOrder)
		r.Get("/orders/mine", h.myOrders)
		r.Get("/orders/confirmed", h.confirmedOrders)
		r.Get("/orders/approved", h.approvedOrders)
		r.Post("/orders/{id}/quotation", h.sendQuotation)

		r.Get("/quotations", h.quotations)
	})
}

// ---- auth ----

func (h *StorefrontHandler) register(w http.ResponseWriter, r *http.Request) {
	var req session.Registration
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	msg, err := scopeFrom(r.Context()).session.Register(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err, "Registration failed.")
		return
	}
	if msg == "" {
		msg = "Registration successful."
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *StorefrontHandler) login(w http.ResponseWriter, r *http.Request) {
	var req session.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	id, err := scopeFrom(r.Context()).session.Establish(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err, "Login failed.")
		return
	}
	resp := map[string]any{"identity": id}
	if dest, ok := session.RoleRoute(id.Role); ok {
		resp["destination"] = dest
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StorefrontHandler) logout(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"loggedIn": false}
	if err := scopeFrom(r.Context()).session.Teardown(r.Context()); err != nil {
		resp["warning"] = "Logged out locally; the server could not be reached."
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StorefrontHandler) current(w http.ResponseWriter, r *http.Request) {
	id, ok := scopeFrom(r.Context()).session.Current()
	resp := map[string]any{"identity": id}
	if dest, routed := session.RoleRoute(id.Role); ok && routed {
		resp["destination"] = dest
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeAuthError reports a rejected login or registration with the
// backend's own message.
func (h *StorefrontHandler) writeAuthError(w http.ResponseWriter, err error, fallback string) {
	if f, ok := gateway.AsFailure(err); ok && f.Kind == gateway.KindRejected {
		msg := f.Message
		if msg == "" {
			msg = fallback
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": msg})
		return
	}
	h.writeError(w, err)
}

// ---- catalog ----

func (h *StorefrontHandler) products(w http.ResponseWriter, r *http.Request) {
	ps, err := scopeFrom(r.Context()).flow.Products(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(ps))
}

func (h *StorefrontHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := scopeFrom(r.Context()).flow.SearchProducts(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(ps))
}

func (h *StorefrontHandler) product(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := scopeFrom(r.Context()).flow.Product(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ---- cart ----

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *StorefrontHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if req.ProductID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "productId required"})
		return
	}
	out, err := scopeFrom(r.Context()).flow.AddToCart(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *StorefrontHandler) cart(w http.ResponseWriter, r *http.Request) {
	view, err := scopeFrom(r.Context()).flow.Cart(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *StorefrontHandler) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req adjustRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	flow := scopeFrom(r.Context()).flow
	view, err := flow.Cart(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := flow.AdjustQuantity(r.Context(), &view, id, req.Delta); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *StorefrontHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := scopeFrom(r.Context()).flow.RemoveFromCart(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- orders ----

type placeOrderRequest struct {
	Address string `json:"address"`
}

func (h *StorefrontHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	o, err := scopeFrom(r.Context()).flow.PlaceOrder(r.Context(), req.Address)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *StorefrontHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	items, err := scopeFrom(r.Context()).flow.MyOrders(r.Context(), filterFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

func (h *StorefrontHandler) confirmedOrders(w http.ResponseWriter, r *http.Request) {
	items, err := scopeFrom(r.Context()).flow.ListRequestedOrders(r.Context(), filterFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

func (h *StorefrontHandler) approvedOrders(w http.ResponseWriter, r *http.Request) {
	items, err := scopeFrom(r.Context()).flow.ListApprovedOrders(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

// flexString accepts a JSON string or number; form inputs arrive as either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type quotationRequest struct {
	Price                 flexString `json:"price"`
	AvailabilityStock     flexString `json:"availabilityStock"`
	EstimatedDeliveryTime flexString `json:"estimatedDeliveryTime"`
}

func (h *StorefrontHandler) sendQuotation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req quotationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	msg, err := scopeFrom(r.Context()).flow.SendQuotation(r.Context(), id, orders.QuotationForm{
		Price:                 string(req.Price),
		AvailabilityStock:     string(req.AvailabilityStock),
		EstimatedDeliveryTime: string(req.EstimatedDeliveryTime),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg, "orderItemId": id})
}

func (h *StorefrontHandler) quotations(w http.ResponseWriter, r *http.Request) {
	qs, err := scopeFrom(r.Context()).flow.ListQuotations(r.Context(), filterFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(qs))
}

// ---- helpers ----

func (h *StorefrontHandler) writeError(w http.ResponseWriter, err error) {
	if fe, ok := orders.AsFieldErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": workflow.Alert(err), "fields": fe})
		return
	}
	var te *orders.TransitionError
	switch {
	case errors.Is(err, workflow.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": workflow.LoginPrompt, "prompt": "login"})
	case errors.As(err, &te):
		writeJSON(w, http.StatusConflict, map[string]any{"error": workflow.Alert(err), "stage": te.From.String()})
	case errors.Is(err, workflow.ErrUnknownItem), gateway.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": workflow.GenericAlert})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func filterFrom(r *http.Request) orders.Filter {
	q := r.URL.Query()
	return orders.Filter{Status: q.Get("status"), Search: q.Get("search")}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
