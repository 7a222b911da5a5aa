package room

import "time"

// CreateRequest is the payload for creating a room
type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Center      string `json:"center" validate:"required,min=1,max=100"`
	Capacity    int    `json:"capacity" validate:"required,gte=1,lte=1000"`
	Status      Status `json:"status" validate:"omitempty,room_status"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateRequest is a partial room patch
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Center      *string `json:"center" validate:"omitempty,min=1,max=100"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=1,lte=1000"`
	Status      *Status `json:"status" validate:"omitempty,room_status"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Empty reports whether no field is present in the patch
func (r *UpdateRequest) Empty() bool {
	return r.Name == nil && r.Center == nil && r.Capacity == nil &&
		r.Status == nil && r.Description == nil
}

// Response is the API shape of a room
type Response struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Center      string  `json:"center"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(r *Room) *Response {
	resp := &Response{
		ID:        r.ID.String(),
		Name:      r.Name,
		Center:    r.Center,
		Capacity:  r.Capacity,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}

	if r.Description.Valid {
		resp.Description = &r.Description.String
	}
	if r.UpdatedAt.Valid {
		s := r.UpdatedAt.Time.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}

	return resp
}

// ResponsesFromEntities converts a slice of entities
func ResponsesFromEntities(rooms []*Room) []*Response {
	out := make([]*Response, len(rooms))
	for i, r := range rooms {
		out[i] = ResponseFromEntity(r)
	}
	return out
}
