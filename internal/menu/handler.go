package menu

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	itemRepo MenuItemRepo
	logger   apt.Logger
	config   *apt.Config
	tlm      *telemetry.HTTP
}

// NewHandler creates a new Handler for menu catalog operations
func NewHandler(itemRepo MenuItemRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		itemRepo: itemRepo,
		logger:   logger,
		config:   config,
		tlm:      telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the menu catalog
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/", h.ListMenuItems)
		r.Get("/search", h.SearchMenuItems)
		r.Get("/{id}", h.GetMenuItem)
		r.Post("/", h.CreateMenuItem)
		r.Put("/{id}", h.UpdateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
		r.Patch("/{id}/availability", h.ToggleAvailability)
	})
}

// MenuItemCreateRequest is the payload for creating a menu item. Pointer
// fields distinguish "absent" from zero so defaults can apply.
type MenuItemCreateRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Ingredients     []string `json:"ingredients"`
	IsAvailable     *bool    `json:"is_available"`
	PreparationTime int      `json:"preparation_time"`
	ImageURL        string   `json:"image_url"`
	Stock           *int     `json:"stock"`
}

// MenuItemUpdateRequest is the payload for a partial update. Only supplied
// fields are applied.
type MenuItemUpdateRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	Price           *float64 `json:"price"`
	Ingredients     []string `json:"ingredients"`
	IsAvailable     *bool    `json:"is_available"`
	PreparationTime *int     `json:"preparation_time"`
	ImageURL        *string  `json:"image_url"`
	Stock           *int     `json:"stock"`
}

// ListMenuItems handles GET /api/menu
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenuItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	filter := parseListFilter(r)

	items, err := h.itemRepo.List(ctx, filter)
	if err != nil {
		log.Error("error retrieving menu items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu items")
		return
	}

	apt.RespondCollection(w, items, "menu-item")
}

// SearchMenuItems handles GET /api/menu/search
func (h *Handler) SearchMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SearchMenuItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	// An absent query is an empty result, not an error and not "everything".
	q := r.URL.Query().Get("q")
	if q == "" {
		apt.RespondCollection(w, []*MenuItem{}, "menu-item")
		return
	}

	items, err := h.itemRepo.Search(ctx, q)
	if err != nil {
		log.Error("error searching menu items", "error", err, "query", q)
		apt.RespondError(w, http.StatusInternalServerError, "Could not search menu items")
		return
	}

	apt.RespondCollection(w, items, "menu-item")
}

// GetMenuItem handles GET /api/menu/{id}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.itemRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu item")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

// CreateMenuItem handles POST /api/menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req MenuItemCreateRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	item := &MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		Ingredients:     req.Ingredients,
		IsAvailable:     true,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
		Stock:           DefaultStock,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}

	if validationErrors := ValidateMenuItem(item); len(validationErrors) > 0 {
		log.Debug("menu item validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	item.BeforeCreate()

	if err := h.itemRepo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, item, links...)
}

// UpdateMenuItem handles PUT /api/menu/{id}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req MenuItemUpdateRequest
	if !h.decodePayload(w, r, &req, log) {
		return
	}

	item, err := h.itemRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu item")
		return
	}
	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	applyUpdate(item, req)

	if validationErrors := ValidateMenuItem(item); len(validationErrors) > 0 {
		log.Debug("menu item validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	item.BeforeUpdate()

	if err := h.itemRepo.Save(ctx, item); err != nil {
		log.Error("cannot update menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

// DeleteMenuItem handles DELETE /api/menu/{id}. Deleting an absent item
// still reports success; callers retrying a delete see the same answer.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.itemRepo.Delete(ctx, id); err != nil {
		log.Error("cannot delete menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	apt.Respond(w, http.StatusOK, map[string]string{"message": "Deleted successfully"}, nil)
}

// ToggleAvailability handles PATCH /api/menu/{id}/availability
func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ToggleAvailability")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.itemRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu item")
		return
	}
	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	item.ToggleAvailability()

	if err := h.itemRepo.Save(ctx, item); err != nil {
		log.Error("cannot toggle menu item availability", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

// parseListFilter builds a ListFilter from query parameters. Values that do
// not parse are ignored rather than rejected.
func parseListFilter(r *http.Request) ListFilter {
	q := r.URL.Query()

	filter := ListFilter{
		Category: q.Get("category"),
	}

	if raw := q.Get("isAvailable"); raw != "" {
		if available, err := strconv.ParseBool(raw); err == nil {
			filter.IsAvailable = &available
		}
	}
	if raw := q.Get("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &max
		}
	}

	return filter
}

func applyUpdate(item *MenuItem, req MenuItemUpdateRequest) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Ingredients != nil {
		item.Ingredients = req.Ingredients
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PreparationTime != nil {
		item.PreparationTime = *req.PreparationTime
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
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

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errors,
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
