package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// StatusFromError сопоставляет таксономию ошибок ядра с HTTP статусом
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, domain.ErrOverpayment),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorDetails извлекает из типизированных ошибок данные для клиента
func ErrorDetails(err error) interface{} {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return map[string]interface{}{
			"roomId":     conflict.RoomID,
			"bookingIds": conflict.BookingIDs,
		}
	}

	var integrity *domain.IntegrityError
	if errors.As(err, &integrity) {
		return map[string]interface{}{
			"entity":     integrity.Entity,
			"id":         integrity.ID,
			"dependents": integrity.Dependents,
		}
	}

	return nil
}

// RespondDomainError отвечает статусом по таксономии
// 5xx всегда отдается с общим сообщением, детали остаются в логах
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}

	if details := ErrorDetails(err); details != nil {
		RespondErrorWithDetails(w, status, message, details)
		return
	}
	RespondError(w, status, message)
}
