package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody тело запроса отсутствует
	ErrEmptyBody = errors.New("request body is empty")

	// ErrMissingParam обязательный параметр не передан
	ErrMissingParam = errors.New("missing parameter")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

// ValidateStruct проверяет теги validate у DTO
// Возвращает map поле -> нарушенное правило, nil если все корректно
func ValidateStruct(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		result[fe.Field()] = fe.Tag()
	}
	return result
}

// PathUUID читает UUID из сегмента пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return uuid.Parse(raw)
}

// QueryUUID читает необязательный UUID из query, nil если не передан
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	date, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// QueryInt читает необязательное целое из query
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// QueryBool читает флаг из query, по умолчанию false
func QueryBool(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && value
}

// ParseDate парсит календарный день в UTC
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, strings.TrimSpace(raw), time.UTC)
}
