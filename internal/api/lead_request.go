package api

// LeadRequest 供建立與整批更新共用，五個內容欄位一次給齊
// swagger:model api.LeadRequest
type LeadRequest struct {
	FirstName string `json:"first_name" validate:"required" example:"Ana"`
	LastName  string `json:"last_name" validate:"required" example:"Lee"`
	Email     string `json:"email" validate:"required,email" example:"a@x.com"`
	Company   string `json:"company" example:"Acme"`
	Note      string `json:"note" example:""`
}
