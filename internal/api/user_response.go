package api

// swagger:model api.UserResponse
type UserResponse struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"alice@example.com"`
}
