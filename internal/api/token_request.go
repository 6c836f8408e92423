package api

// TokenRequest 對應 OAuth2 password form 欄位，username 即註冊 Email
// swagger:model api.TokenRequest
type TokenRequest struct {
	Username string `form:"username" validate:"required" example:"alice@example.com"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}
