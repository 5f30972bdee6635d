package list_bookings

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
)

// ParseListRequest читает фильтры из query
// startDate, endDate (YYYY-MM-DD), roomId, clientId, staffId, status, includeCancelled
func ParseListRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IncludeCancelled: handlers.QueryBool(r, "includeCancelled"),
	}

	var err error
	if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	if req.RoomID, err = handlers.QueryUUID(r, "roomId"); err != nil {
		return nil, fmt.Errorf("roomId: %w", err)
	}
	if req.ClientID, err = handlers.QueryUUID(r, "clientId"); err != nil {
		return nil, fmt.Errorf("clientId: %w", err)
	}
	if req.StaffID, err = handlers.QueryUUID(r, "staffId"); err != nil {
		return nil, fmt.Errorf("staffId: %w", err)
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := domain.ParseBookingStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		req.Status = &status
	}

	return req, nil
}
