package room

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/pkg/response"
	"github.com/talx/rooms-api/internal/pkg/validator"
)

// Handler serves the room directory. The directory is plain CRUD, so
// it talks to the repository directly.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list rooms failed")
		response.InternalError(w)
		return
	}
	response.List(w, ResponsesFromEntities(rooms), len(rooms))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	room, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("get room failed")
		response.InternalError(w)
		return
	}
	if room == nil {
		response.NotFound(w, "room not found")
		return
	}
	response.OK(w, ResponseFromEntity(room))
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

	status := req.Status
	if status == "" {
		status = StatusAvailable
	}

	room := &Room{
		ID:          uuid.New(),
		Name:        req.Name,
		Center:      req.Center,
		Capacity:    req.Capacity,
		Status:      status,
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
		CreatedAt:   time.Now(),
	}

	if err := h.repo.Insert(r.Context(), room); err != nil {
		log.Error().Err(err).Msg("create room failed")
		response.InternalError(w)
		return
	}
	response.Created(w, ResponseFromEntity(room))
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

	if req.Empty() {
		response.ValidationError(w, map[string]string{"body": "At least one field must be provided"})
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	room, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("get room failed")
		response.InternalError(w)
		return
	}
	if room == nil {
		response.NotFound(w, "room not found")
		return
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Center != nil {
		room.Center = *req.Center
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.Description != nil {
		room.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	room.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := h.repo.Update(r.Context(), room); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "room not found")
			return
		}
		log.Error().Err(err).Msg("update room failed")
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(room))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	room, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "room not found")
			return
		}
		log.Error().Err(err).Msg("delete room failed")
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(room))
}

// Routes returns the room router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid room id")
		return uuid.Nil, false
	}
	return id, true
}
