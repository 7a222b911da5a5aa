package center

import "time"

// CreateRequest is the payload for creating a center
type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Address     string `json:"address" validate:"required,min=1,max=200"`
	Phone       string `json:"phone" validate:"omitempty,phone,max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateRequest is a partial center patch
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Address     *string `json:"address" validate:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,phone,max=20"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// Empty reports whether no field is present in the patch
func (r *UpdateRequest) Empty() bool {
	return r.Name == nil && r.Address == nil && r.Phone == nil &&
		r.Email == nil && r.Description == nil
}

// Response is the API shape of a center
type Response struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(c *Center) *Response {
	resp := &Response{
		ID:        c.ID.String(),
		Name:      c.Name,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}

	if c.Phone.Valid {
		resp.Phone = &c.Phone.String
	}
	if c.Email.Valid {
		resp.Email = &c.Email.String
	}
	if c.Description.Valid {
		resp.Description = &c.Description.String
	}
	if c.UpdatedAt.Valid {
		s := c.UpdatedAt.Time.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}

	return resp
}

// ResponsesFromEntities converts a slice of entities
func ResponsesFromEntities(centers []*Center) []*Response {
	out := make([]*Response, len(centers))
	for i, c := range centers {
		out[i] = ResponseFromEntity(c)
	}
	return out
}
