package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tablecraft/restaurant-admin/internal/menu"
)

const MaxBodyBytes = 1 << 20

// Handler handles HTTP requests for orders
type Handler struct {
	orderRepo OrderRepo
	catalog   Catalog
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
}

// NewHandler creates a new Handler for order operations
func NewHandler(orderRepo OrderRepo, catalog Catalog, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		orderRepo: orderRepo,
		catalog:   catalog,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for orders
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		// top-items stays ahead of /{id}; chi prefers literal segments
		// either way, but the reading order should match the matching order.
		r.Get("/top-items", h.ListTopSellers)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Post("/", h.CreateOrder)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
	})
}

// OrderCreateRequest is the payload for placing an order.
type OrderCreateRequest struct {
	Items        []LineItemRequest `json:"items"`
	CustomerName string            `json:"customer_name"`
	TableNumber  int               `json:"table_number"`
}

// LineItemRequest references a menu item and a quantity. Any client-supplied
// price is discarded; the snapshot always comes from the catalog.
type LineItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
}

// OrderStatusRequest is the payload for a status transition.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// ListTopSellers handles GET /api/orders/top-items
func (h *Handler) ListTopSellers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTopSellers")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	result, err := h.orderRepo.TopSellers(ctx, TopSellersLimit)
	if err != nil {
		log.Error("error aggregating top sellers", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve top sellers")
		return
	}

	apt.RespondCollection(w, result, "top-item")
}

// ListOrders handles GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	filter := parseListFilter(r)

	orders, err := h.orderRepo.List(ctx, filter)
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	views, err := h.resolveOrders(ctx, orders)
	if err != nil {
		log.Error("error resolving order items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, views, "order")
}

// GetOrder handles GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}
	if o == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	views, err := h.resolveOrders(ctx, []*Order{o})
	if err != nil {
		log.Error("error resolving order items", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	view := views[0]
	links := apt.RESTfulLinksFor(view)
	apt.RespondSuccess(w, view, links...)
}

// CreateOrder handles POST /api/orders.
//
// Line items are processed strictly in the given order: look up the menu
// item, check stock, snapshot the current price, then decrement and persist
// the stock. There is no transaction and no compensating rollback: when a
// later line item fails, decrements already persisted for earlier items stay
// committed. Concurrent orders can also race the check-then-decrement and
// oversell. Both are inherited properties of the system, kept on purpose.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req OrderCreateRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	if len(req.Items) == 0 {
		log.Debug("order create request without items")
		apt.RespondError(w, http.StatusBadRequest, "Order must contain items")
		return
	}

	items := make([]LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			apt.RespondError(w, http.StatusBadRequest, "quantity must be a positive integer")
			return
		}

		menuItem, err := h.catalog.Get(ctx, line.MenuItemID)
		if err != nil {
			log.Error("error loading menu item for order", "error", err, "menu_item", line.MenuItemID.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
			return
		}
		if menuItem == nil {
			apt.RespondError(w, http.StatusNotFound, fmt.Sprintf("Menu item not found: %s", line.MenuItemID))
			return
		}

		if menuItem.Stock < line.Quantity {
			apt.RespondError(w, http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s", menuItem.Name))
			return
		}

		items = append(items, LineItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
		})

		menuItem.Stock -= line.Quantity
		menuItem.BeforeUpdate()
		if err := h.catalog.Save(ctx, menuItem); err != nil {
			log.Error("cannot persist stock decrement", "error", err, "menu_item", menuItem.ID.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
			return
		}
	}

	o := NewOrder()
	o.Items = items
	o.TotalAmount = Total(items)
	o.CustomerName = req.CustomerName
	o.TableNumber = req.TableNumber
	o.BeforeCreate()

	if err := h.orderRepo.Create(ctx, o); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	log.Info("order created", "order_number", o.OrderNumber, "total_amount", o.TotalAmount)

	links := apt.RESTfulLinksFor(o)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, o, links...)
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status. Any valid status
// is accepted regardless of the current one; there is no transition graph.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	if !ValidStatus(req.Status) {
		log.Debug("invalid order status", "status", req.Status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	o, err := h.orderRepo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		log.Error("cannot update order status", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	if o == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	log.Info("order status updated", "order_number", o.OrderNumber, "status", o.Status)

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, o, links...)
}

// resolveOrders joins each order's line items against current menu item data
// in one catalog round trip. Deleted menu items resolve to nil.
func (h *Handler) resolveOrders(ctx context.Context, orders []*Order) ([]*OrderView, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.MenuItemID] {
				seen[item.MenuItemID] = true
				ids = append(ids, item.MenuItemID)
			}
		}
	}

	catalog := make(map[uuid.UUID]*menu.MenuItem, len(ids))
	if len(ids) > 0 {
		menuItems, err := h.catalog.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, item := range menuItems {
			catalog[item.ID] = item
		}
	}

	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o, catalog))
	}
	return views, nil
}

// parseListFilter builds a ListFilter from query parameters, falling back to
// defaults for absent or unparsable pagination values.
func parseListFilter(r *http.Request) ListFilter {
	q := r.URL.Query()

	filter := ListFilter{
		Status: q.Get("status"),
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	return filter
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, target interface{}, log apt.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	return true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
