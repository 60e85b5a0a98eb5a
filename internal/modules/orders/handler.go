package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)            // POST   /api/v1/orders
		r.Get("/", h.listOrders)              // GET    /api/v1/orders?shift=|open=true|pickup_to_pay=true|paid_since=
		r.Get("/tables", h.tableOccupancy)    // GET    /api/v1/orders/tables
		r.Get("/{id}", h.getOrder)            // GET    /api/v1/orders/{id}
		r.Post("/{id}/status", h.transition)  // POST   /api/v1/orders/{id}/status
		r.Post("/{id}/driver", h.assignDriver)
		r.Post("/{id}/cook", h.assignCook)
		r.Put("/{id}/items", h.updateItems)
		r.Post("/{id}/kitchen", h.sendToKitchen)
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Create(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		out []*Order
		err error
	)
	switch {
	case q.Get("shift") != "":
		out, err = h.service.ListByShift(r.Context(), Shift(strings.ToUpper(q.Get("shift"))))
	case q.Get("open") == "true":
		out, err = h.service.ListOpen(r.Context())
	case q.Get("pickup_to_pay") == "true":
		out, err = h.service.ListPickupAwaitingPayment(r.Context())
	case q.Get("paid_since") != "":
		var since time.Time
		since, err = time.Parse(time.RFC3339, q.Get("paid_since"))
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "paid_since must be RFC3339"})
			return
		}
		out, err = h.service.ListPaidSince(r.Context(), since)
	default:
		out, err = h.service.List(r.Context())
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Transition(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) assignDriver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Driver string `json:"driver"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.AssignDriver(r.Context(), chi.URLParam(r, "id"), req.Driver)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) assignCook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cook string `json:"cook"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.AssignCook(r.Context(), chi.URLParam(r, "id"), req.Cook)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateItems(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateItems(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) sendToKitchen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	o, err := h.service.SendToKitchen(r.Context(), chi.URLParam(r, "id"), parseRoleOr(req.Role, RoleAdmin))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) tableOccupancy(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.TableOccupancy(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tables)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTerminalStatus), errors.Is(err, ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrPaidViaTransition),
		errors.Is(err, ErrDriverRequired), errors.Is(err, ErrPickupNeedsPayment):
		return http.StatusUnprocessableEntity
	default:
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
			strings.Contains(msg, "must be") || strings.Contains(msg, "not found") {
			if strings.Contains(msg, "not found") {
				return http.StatusNotFound
			}
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
