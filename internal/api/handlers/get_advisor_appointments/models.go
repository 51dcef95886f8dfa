package get_advisor_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments/models"
)

// ToServiceRequest собирает модель сервиса из query параметров.
// Параметры startDate/endDate задают период; date - его однодневный вариант
func ToServiceRequest(advisorID, userID int64, dateStr, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetAdvisorAppointmentsRequest, error) {
	req := &models.GetAdvisorAppointmentsRequest{
		UserID:    userID,
		AdvisorID: advisorID,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, fmt.Errorf("invalid startDate: %w", err)
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, fmt.Errorf("invalid endDate: %w", err)
			}
			req.EndDate = &endDate
		}
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
