package dto

// CreateUserRequest registers the calling client. The email and role come
// from the verified token and server configuration, never from the body.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}
