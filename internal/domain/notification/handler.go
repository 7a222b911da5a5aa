package notification

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/pkg/response"
	"github.com/talx/rooms-api/internal/pkg/validator"
)

// Handler handles notification endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates notification handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes returns the notification router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/resend", h.Resend)

	return r
}

// List returns all notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list notifications")
		response.InternalError(w)
		return
	}

	response.List(w, ResponsesFromEntities(notifications), len(notifications))
}

// Get returns a single notification
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.OK(w, ResponseFromEntity(n))
}

// Create registers a notification and queues it for delivery
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	bookingID, _ := uuid.Parse(req.BookingID)

	n, err := h.svc.Create(r.Context(), &Notification{
		UserID:    userID,
		BookingID: bookingID,
		Type:      Type(req.Type),
		Title:     req.Title,
		Message:   req.Message,
		Email:     req.Email,
		Data:      req.Data,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create notification")
		response.InternalError(w)
		return
	}

	response.Created(w, ResponseFromEntity(n))
}

// Delete removes a notification record
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	response.NoContent(w)
}

// Resend queues an existing notification for delivery again
func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Resend(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	response.OK(w, ResponseFromEntity(n))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "Notification not found")
		return
	}

	log.Error().Err(err).Msg("notification request failed")
	response.InternalError(w)
}
