package api

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the minted session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest is the body of PATCH /users/{id}. Nil fields are
// left unchanged; a non-nil Password is re-hashed.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// TripRequest is the body of trip create and full-update operations.
type TripRequest struct {
	Destination string   `json:"destination"`
	Summary     string   `json:"summary"`
	TravelDate  string   `json:"travelDate"`
	Images      []string `json:"images,omitempty"`
}

// TripPatchRequest is the body of PATCH /trips/{id}.
type TripPatchRequest struct {
	Destination *string   `json:"destination,omitempty"`
	Summary     *string   `json:"summary,omitempty"`
	TravelDate  *string   `json:"travelDate,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}

// NewsRequest is the body of news create and update operations.
type NewsRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ContactRequest is the body of the public contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CountResponse wraps collection counts.
type CountResponse struct {
	Count int64 `json:"count"`
}

// listOrEmpty avoids serializing null for empty collections.
func listOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
