package dto

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}
