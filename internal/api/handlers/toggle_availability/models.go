package toggle_availability

import (
	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
)

// ToggleWindowRequest HTTP request model
type ToggleWindowRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ToggleWindowRequest) ToServiceRequest(userID int64) *models.ToggleWindowRequest {
	return &models.ToggleWindowRequest{
		UserID:      userID,
		IsAvailable: r.IsAvailable,
	}
}
