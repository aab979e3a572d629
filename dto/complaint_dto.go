package dto

type CreateComplaintDTO struct {
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required,min=5,max=8000"`
}

type UpdateComplaintStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
