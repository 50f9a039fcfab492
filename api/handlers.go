/*
handlers.go - HTTP API handlers for the rewards engine

PURPOSE:
  Exposes the use cases via REST. Handles HTTP request/response and JSON
  serialization, then delegates to the service layer; no domain logic
  lives here.

ENDPOINTS:
  Users:
    GET    /api/users                   List users
    POST   /api/users                   Register user
    GET    /api/users/{id}              Get user
    GET    /api/users/{id}/balance      Balance triple
    GET    /api/users/{id}/ledger       Paginated point history
    GET    /api/users/{id}/redemptions  User's redemption requests
    POST   /api/users/{id}/activate     (admin) Activate account
    POST   /api/users/{id}/deactivate   (admin) Deactivate account

  Catalog:
    GET    /api/products                List products
    POST   /api/products                (admin) Create product
    PUT    /api/products/{id}           (admin) Update product
    DELETE /api/products/{id}           (admin) Delete product
    POST   /api/products/{id}/activate  (admin)
    POST   /api/products/{id}/deactivate (admin)

  Events:
    GET    /api/events                  List events
    POST   /api/events                  (admin) Create event
    PUT    /api/events/{id}             (admin) Rename/reschedule
    POST   /api/events/{id}/activate    (admin)
    POST   /api/events/{id}/deactivate  (admin)

  Points & redemptions:
    POST   /api/points/award            (admin) Credit event points
    POST   /api/redemptions             Request a redemption
    GET    /api/redemptions/{id}        Get a redemption
    POST   /api/redemptions/{id}/approve (admin)
    POST   /api/redemptions/{id}/deliver (admin)
    POST   /api/redemptions/{id}/reject  (admin)
    POST   /api/redemptions/{id}/cancel  (admin)

ADMIN IDENTITY:
  Admin-gated endpoints read the acting admin's user id from the
  X-Admin-ID header. Authentication itself is out of scope; this is the
  internal service boundary, not a public protocol.

ERROR HANDLING:
  Domain errors map to HTTP status by kind:
    400 validation        403 unauthorized     404 not found
    409 conflict          422 invalid state / funds / stock / overflow
    500 anything else

SEE ALSO:
  - dto.go:    Request/response structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/rewards-engine/rewards"
)

// Handler holds the service dependency for all HTTP handlers.
type Handler struct {
	svc *rewards.Service
}

func NewHandler(svc *rewards.Service) *Handler {
	return &Handler{svc: svc}
}

// adminID extracts the acting admin's user id from the request.
func adminID(r *http.Request) rewards.UserID {
	return rewards.UserID(r.Header.Get("X-Admin-ID"))
}

// =============================================================================
// USER HANDLERS
// =============================================================================

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, err := h.svc.RegisterUser(r.Context(), req.Name, req.Email, req.EmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), rewards.UserID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.GetBalance(r.Context(), rewards.UserID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceDTO{
		Total:     balance.Total,
		Locked:    balance.Locked,
		Available: balance.Available,
	})
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 20)
	page, err := h.svc.LedgerHistory(r.Context(), rewards.UserID(chi.URLParam(r, "id")), offset, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dto := LedgerPageDTO{
		Entries: make([]LedgerEntryDTO, len(page.Entries)),
		Total:   page.Total,
		Offset:  page.Offset,
		Limit:   page.Limit,
	}
	for i, e := range page.Entries {
		dto.Entries[i] = toLedgerEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) ListUserRedemptions(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.ListRedemptionsByUser(r.Context(), rewards.UserID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]RedemptionDTO, len(reqs))
	for i, req := range reqs {
		dtos[i] = toRedemptionDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SetUserActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.svc.SetUserActive(r.Context(), adminID(r), rewards.UserID(chi.URLParam(r, "id")), active)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserDTO(user))
	}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), adminID(r), rewards.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PointsCost:  req.PointsCost,
		Stock:       req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(product))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), adminID(r), rewards.ProductID(chi.URLParam(r, "id")), rewards.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PointsCost:  req.PointsCost,
		Stock:       req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), adminID(r), rewards.ProductID(chi.URLParam(r, "id"))); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetProductActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.svc.SetProductActive(r.Context(), adminID(r), rewards.ProductID(chi.URLParam(r, "id")), active)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductDTO(product))
	}
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	occursAt, err := time.Parse(time.RFC3339, req.OccursAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "occurs_at must be RFC3339")
		return
	}
	event, err := h.svc.CreateEvent(r.Context(), adminID(r), req.Name, occursAt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(event))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	eventID := rewards.EventID(chi.URLParam(r, "id"))
	var event *rewards.Event
	var err error
	if req.Name != nil {
		event, err = h.svc.RenameEvent(r.Context(), adminID(r), eventID, *req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.OccursAt != nil {
		occursAt, perr := time.Parse(time.RFC3339, *req.OccursAt)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "occurs_at must be RFC3339")
			return
		}
		event, err = h.svc.RescheduleEvent(r.Context(), adminID(r), eventID, occursAt)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if event == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(event))
}

func (h *Handler) SetEventActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := h.svc.SetEventActive(r.Context(), adminID(r), rewards.EventID(chi.URLParam(r, "id")), active)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventDTO(event))
	}
}

// =============================================================================
// POINTS & REDEMPTIONS
// =============================================================================

func (h *Handler) AwardPoints(w http.ResponseWriter, r *http.Request) {
	var req AwardPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	entry, err := h.svc.AwardPoints(r.Context(), adminID(r),
		rewards.UserID(req.UserID), rewards.EventID(req.EventID), req.Points)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLedgerEntryDTO(*entry))
}

func (h *Handler) RequestRedemption(w http.ResponseWriter, r *http.Request) {
	var req RequestRedemptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	redemption, err := h.svc.RequestRedemption(r.Context(),
		rewards.UserID(req.UserID), rewards.ProductID(req.ProductID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRedemptionDTO(redemption))
}

func (h *Handler) GetRedemption(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.svc.GetRedemption(r.Context(), rewards.RequestID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRedemptionDTO(redemption))
}

func (h *Handler) ApproveRedemption(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.svc.ApproveRedemption(r.Context(), adminID(r), rewards.RequestID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRedemptionDTO(redemption))
}

func (h *Handler) DeliverRedemption(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.svc.DeliverRedemption(r.Context(), adminID(r), rewards.RequestID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRedemptionDTO(redemption))
}

func (h *Handler) RejectRedemption(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.svc.RejectRedemption(r.Context(), adminID(r), rewards.RequestID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRedemptionDTO(redemption))
}

func (h *Handler) CancelRedemption(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.svc.CancelRedemption(r.Context(), adminID(r), rewards.RequestID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRedemptionDTO(redemption))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorDTO{Error: message, Kind: "bad_request"})
}

// writeDomainError maps the error taxonomy to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"
	switch {
	case errors.Is(err, rewards.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, rewards.ErrUnauthorized):
		status, kind = http.StatusForbidden, "unauthorized"
	case errors.Is(err, rewards.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, rewards.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, rewards.ErrInsufficientFunds):
		status, kind = http.StatusUnprocessableEntity, "insufficient_funds"
	case errors.Is(err, rewards.ErrInsufficientStock):
		status, kind = http.StatusUnprocessableEntity, "insufficient_stock"
	case errors.Is(err, rewards.ErrInvalidState):
		status, kind = http.StatusUnprocessableEntity, "invalid_state"
	case errors.Is(err, rewards.ErrOverflow):
		status, kind = http.StatusUnprocessableEntity, "overflow"
	}
	writeJSON(w, status, ErrorDTO{Error: err.Error(), Kind: kind})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
