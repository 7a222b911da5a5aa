package center

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

// Handler serves the center directory
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	centers, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list centers failed")
		response.InternalError(w)
		return
	}
	response.List(w, ResponsesFromEntities(centers), len(centers))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("get center failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, "center not found")
		return
	}
	response.OK(w, ResponseFromEntity(c))
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

	c := &Center{
		ID:          uuid.New(),
		Name:        req.Name,
		Address:     req.Address,
		Phone:       sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Email:       sql.NullString{String: req.Email, Valid: req.Email != ""},
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
		CreatedAt:   time.Now(),
	}

	if err := h.repo.Insert(r.Context(), c); err != nil {
		log.Error().Err(err).Msg("create center failed")
		response.InternalError(w)
		return
	}
	response.Created(w, ResponseFromEntity(c))
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

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("get center failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, "center not found")
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Phone != nil {
		c.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Email != nil {
		c.Email = sql.NullString{String: *req.Email, Valid: *req.Email != ""}
	}
	if req.Description != nil {
		c.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	c.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}

	if err := h.repo.Update(r.Context(), c); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "center not found")
			return
		}
		log.Error().Err(err).Msg("update center failed")
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "center not found")
			return
		}
		log.Error().Err(err).Msg("delete center failed")
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(c))
}

// Routes returns the center router
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
		response.BadRequest(w, "invalid center id")
		return uuid.Nil, false
	}
	return id, true
}
