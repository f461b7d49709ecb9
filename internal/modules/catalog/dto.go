package catalog

// CreateServiceRequest is bound by gin and validated again by the service
// after trimming, so both tag sets carry the same limits.
type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=255" validate:"required,max=255"`
	Description     string `json:"description" binding:"max=5000" validate:"max=5000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440" validate:"min=1,max=1440"`
}

type UpdateDurationRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1,max=1440" validate:"min=1,max=1440"`
}

type ListServicesQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
