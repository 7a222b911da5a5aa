package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/pkg/response"
	"github.com/talx/rooms-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.List(w, ResponsesFromEntities(bookings), len(bookings))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	b, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(b))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	b, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	b, err := h.svc.Approve(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	b, err := h.svc.Reschedule(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	var conflictErr *ScheduleConflictError

	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "booking not found")
	case errors.Is(err, ErrCancelled):
		response.Conflict(w, "OPERATION_NOT_PERMITTED", "operation not permitted on a cancelled booking")
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(w, http.StatusConflict, "SCHEDULE_CONFLICT", conflictErr.Error(),
			map[string]string{"conflicts": strconv.Itoa(conflictErr.Conflicts)})
	default:
		log.Error().Err(err).Msg("booking request failed")
		response.InternalError(w)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid booking id")
		return uuid.Nil, false
	}
	return id, true
}
