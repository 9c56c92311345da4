// Package api exposes the ordering core over HTTP/JSON
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"golden-fork/internal/kvstore"
	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/services/booking"
	"golden-fork/internal/services/cart"
	"golden-fork/internal/services/checkout"
	"golden-fork/internal/services/coupon"
	"golden-fork/internal/services/menu"
	"golden-fork/internal/services/orders"
	"golden-fork/internal/services/pricing"
	"golden-fork/internal/validation"
)

// SessionHeader carries the client's session id
const SessionHeader = "X-Session-ID"

// Users is the remote user store used to establish a session
type Users interface {
	FindUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	CreateUser(ctx context.Context, name, mobile, address string) (*models.User, error)
}

// Pinger reports backend health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the HTTP handler
type Deps struct {
	Sessions       *kvstore.Sessions
	Users          Users
	Orders         *orders.Service
	Checkout       *checkout.Service
	Coupons        []models.Coupon
	FeePolicy      pricing.FeePolicy
	CurrencySymbol string
	Location       *time.Location
	RequestTimeout time.Duration
	Health         Pinger
}

// Handler handles HTTP requests for the order service
type Handler struct {
	deps   Deps
	logger *logger.Logger
}

func NewHandler(deps Deps, log *logger.Logger) *Handler {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 15 * time.Second
	}
	return &Handler{deps: deps, logger: log}
}

// SetupRoutes registers every route with request logging
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))
	mux.HandleFunc("GET /menu", h.withLogging(h.GetMenu))
	mux.HandleFunc("POST /session", h.withLogging(h.StartSession))

	mux.HandleFunc("GET /cart", h.withLogging(h.GetCart))
	mux.HandleFunc("POST /cart/items", h.withLogging(h.AddCartItem))
	mux.HandleFunc("PATCH /cart/items/{id}", h.withLogging(h.ChangeCartItem))
	mux.HandleFunc("DELETE /cart/items/{id}", h.withLogging(h.RemoveCartItem))
	mux.HandleFunc("POST /cart/coupon", h.withLogging(h.ApplyCoupon))
	mux.HandleFunc("DELETE /cart/coupon", h.withLogging(h.RemoveCoupon))
	mux.HandleFunc("GET /cart/totals", h.withLogging(h.GetTotals))

	mux.HandleFunc("POST /bookings", h.withLogging(h.SaveBooking))
	mux.HandleFunc("POST /checkout", h.withLogging(h.PlaceOrder))
	mux.HandleFunc("GET /orders", h.withLogging(h.ListOrders))

	return mux
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.deps.Health == nil || h.deps.Health.Ping(ctx) == nil
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, r, status, response)
}

// GetMenu handles GET /menu with the home screen filters as query parameters
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := menu.Options{
		Cuisines:  splitList(q["cuisine"]),
		Dietary:   q.Get("dietary"),
		DealsOnly: q.Get("deals") == "true",
	}

	var err error
	if opts.MinPrice, err = queryDecimal(q.Get("min_price")); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "min_price must be a number", requestIDFrom(r.Context()))
		return
	}
	if opts.MaxPrice, err = queryDecimal(q.Get("max_price")); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "max_price must be a number", requestIDFrom(r.Context()))
		return
	}
	if v := q.Get("min_rating"); v != "" {
		rating, err := decimal.NewFromString(v)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "min_rating must be a number", requestIDFrom(r.Context()))
			return
		}
		opts.MinRating = rating.InexactFloat64()
	}

	search := q.Get("search")
	items := menu.Filter(menu.Items(), q.Get("category"), search, opts)
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"categories":     menu.Categories(),
		"items":          items,
		"active_filters": menu.ActiveCount(opts, search),
	})
}

type sessionRequest struct {
	Mobile  string `json:"mobile"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// StartSession handles POST /session: it binds the session to a mobile
// number, registering the user when a name is supplied for an unknown number
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req sessionRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	if err := validation.ValidateMobile(req.Mobile); err != nil {
		h.writeServiceError(w, r, "session_validation_failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	user, err := h.deps.Users.FindUserByMobile(ctx, req.Mobile)
	switch {
	case errors.Is(err, models.ErrNotFound) && strings.TrimSpace(req.Name) != "":
		user, err = h.deps.Users.CreateUser(ctx, strings.TrimSpace(req.Name), req.Mobile, strings.TrimSpace(req.Address))
		if err != nil {
			h.writeServiceError(w, r, "user_create_failed", models.NewRemoteError("create user", err))
			return
		}
		h.logger.Info("user_registered", "New user registered", requestID, map[string]interface{}{
			"user_id": user.ID,
		})
	case errors.Is(err, models.ErrNotFound):
		h.writeServiceError(w, r, "user_lookup_failed", err)
		return
	case err != nil:
		h.writeServiceError(w, r, "user_lookup_failed", models.NewRemoteError("find user", err))
		return
	}

	if err := sess.Store.Set(ctx, kvstore.KeyUserMobile, req.Mobile); err != nil {
		h.writeServiceError(w, r, "session_save_failed", models.NewRemoteError("save session", err))
		return
	}
	h.writeJSON(w, r, http.StatusOK, user)
}

type cartResponse struct {
	Items  []models.LineItem `json:"items"`
	Count  int               `json:"count"`
	Coupon *models.Coupon    `json:"coupon"`
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	items, err := cart.ForSession(sess, h.logger).Items(ctx)
	if err != nil {
		h.writeServiceError(w, r, "cart_load_failed", err)
		return
	}
	h.writeCart(ctx, w, r, sess, items)
}

type addItemRequest struct {
	ID string `json:"id"`
}

// AddCartItem handles POST /cart/items with a menu item id
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	dish, found := menu.Find(req.ID)
	if !found {
		h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestIDFrom(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	items, err := cart.ForSession(sess, h.logger).Add(ctx, dish.Product())
	if err != nil {
		h.writeServiceError(w, r, "cart_add_failed", err)
		return
	}
	h.writeCart(ctx, w, r, sess, items)
}

type changeItemRequest struct {
	Delta int `json:"delta"`
}

// ChangeCartItem handles PATCH /cart/items/{id}
func (h *Handler) ChangeCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req changeItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	items, err := cart.ForSession(sess, h.logger).ChangeQuantity(ctx, r.PathValue("id"), req.Delta)
	if err != nil {
		h.writeServiceError(w, r, "cart_change_failed", err)
		return
	}
	h.writeCart(ctx, w, r, sess, items)
}

// RemoveCartItem handles DELETE /cart/items/{id}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	items, err := cart.ForSession(sess, h.logger).Remove(ctx, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, "cart_remove_failed", err)
		return
	}
	h.writeCart(ctx, w, r, sess, items)
}

type couponRequest struct {
	Code string `json:"code"`
}

// ApplyCoupon handles POST /cart/coupon
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req couponRequest
	if !h.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	sess.Lock.Lock()
	applied, err := coupon.NewApplier(sess.Store, h.deps.Coupons, h.logger).Apply(ctx, req.Code)
	sess.Lock.Unlock()
	if err != nil {
		h.writeServiceError(w, r, "coupon_apply_failed", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, applied)
}

// RemoveCoupon handles DELETE /cart/coupon
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	sess.Lock.Lock()
	err := coupon.NewApplier(sess.Store, h.deps.Coupons, h.logger).Clear(ctx)
	sess.Lock.Unlock()
	if err != nil {
		h.writeServiceError(w, r, "coupon_clear_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type totalsResponse struct {
	Mode       models.OrderMode   `json:"mode"`
	Totals     pricing.Totals     `json:"totals"`
	Formatted  map[string]string  `json:"formatted"`
	Comparison pricing.Comparison `json:"comparison"`
	Coupon     *models.Coupon     `json:"coupon"`
}

// GetTotals handles GET /cart/totals?mode=delivery|takeaway|dinein
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	items, err := cart.ForSession(sess, h.logger).Items(ctx)
	if err != nil {
		h.writeServiceError(w, r, "cart_load_failed", err)
		return
	}
	applied, err := coupon.NewApplier(sess.Store, h.deps.Coupons, h.logger).Current(ctx)
	if err != nil {
		h.writeServiceError(w, r, "coupon_load_failed", err)
		return
	}

	mode := models.ParseOrderMode(r.URL.Query().Get("mode"))
	totals := pricing.ComputeTotals(items, applied, mode, h.deps.FeePolicy)
	h.writeJSON(w, r, http.StatusOK, totalsResponse{
		Mode:       mode,
		Totals:     totals.Rounded(),
		Formatted:  pricing.FormatTotals(h.deps.CurrencySymbol, totals),
		Comparison: pricing.Compare(totals.Subtotal),
		Coupon:     applied,
	})
}

type preOrderLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type bookingRequest struct {
	models.Booking
	PreOrder []preOrderLine `json:"preOrder"`
}

// SaveBooking handles POST /bookings: a dine-in table booking with optional
// pre-ordered dishes
func (h *Handler) SaveBooking(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req bookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	pre := booking.NewPreOrder(nil)
	for _, line := range req.PreOrder {
		dish, found := menu.Find(line.ID)
		if !found {
			h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestIDFrom(r.Context()))
			return
		}
		for i := 0; i < max(1, line.Quantity); i++ {
			pre.Add(dish.Product())
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	sess.Lock.Lock()
	at, err := booking.NewService(sess.Store, h.deps.Location, h.logger).Save(ctx, req.Booking, pre.Items())
	sess.Lock.Unlock()
	if err != nil {
		h.writeServiceError(w, r, "booking_save_failed", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]interface{}{
		"scheduled":      at.UTC().Format(time.RFC3339),
		"pre_order":      pre.Items(),
		"pre_order_qty":  pre.Count(),
		"pre_order_cost": pricing.Format(h.deps.CurrencySymbol, pre.Total()),
	})
}

// PlaceOrder handles POST /checkout
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req models.CheckoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Mode = models.ParseOrderMode(string(req.Mode))

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	receipt, err := h.deps.Checkout.PlaceOrder(ctx, sess, req)
	if err != nil {
		h.writeServiceError(w, r, "order_creation_failed", err)
		return
	}

	h.logger.Debug("order_created", "Order created successfully", requestID, map[string]interface{}{
		"order_id": receipt.OrderID,
		"total":    receipt.Total.StringFixed(2),
	})
	h.writeJSON(w, r, http.StatusCreated, receipt)
}

// ListOrders handles GET /orders?status=&type=&range=&search=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	criteria := models.FilterCriteria{
		Statuses:  splitList(q["status"]),
		Types:     splitList(q["type"]),
		DateRange: models.DateRange(strings.ToLower(q.Get("range"))),
		Search:    q.Get("search"),
	}
	switch criteria.DateRange {
	case "", models.RangeAll, models.RangeToday, models.RangeWeek, models.RangeMonth:
	default:
		h.writeErrorResponse(w, http.StatusBadRequest, "range must be one of: all, today, week, month", requestIDFrom(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deps.RequestTimeout)
	defer cancel()

	mobile, err := checkout.SessionMobile(ctx, sess.Store)
	if err != nil {
		h.writeServiceError(w, r, "session_load_failed", err)
		return
	}
	views, err := h.deps.Orders.List(ctx, mobile, criteria)
	if err != nil {
		h.writeServiceError(w, r, "orders_list_failed", err)
		return
	}

	type orderItem struct {
		models.OrderView
		Date string `json:"date"`
	}
	out := make([]orderItem, 0, len(views))
	for _, v := range views {
		out = append(out, orderItem{OrderView: v, Date: orders.FormatDate(v.Timestamp, h.deps.Location)})
	}
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"orders": out,
		"count":  len(out),
	})
}

func (h *Handler) writeCart(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *kvstore.Session, items []models.LineItem) {
	applied, err := coupon.NewApplier(sess.Store, h.deps.Coupons, h.logger).Current(ctx)
	if err != nil {
		h.writeServiceError(w, r, "coupon_load_failed", err)
		return
	}
	count := 0
	for _, it := range items {
		count += it.EffectiveQuantity()
	}
	h.writeJSON(w, r, http.StatusOK, cartResponse{Items: items, Count: count, Coupon: applied})
}

// session opens the store of the calling session, answering 400 when the
// header is missing
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*kvstore.Session, bool) {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, SessionHeader+" header is required", requestIDFrom(r.Context()))
		return nil, false
	}
	return h.deps.Sessions.Open(id), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestIDFrom(r.Context()), err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r.Context()))
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestIDFrom(r.Context()), err, nil)
	}
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}
