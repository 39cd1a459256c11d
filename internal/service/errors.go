package service

import "fmt"

// ValidationError - отсутствующее или некорректное обязательное поле запроса.
// Поднимается до клиента как 400 с указанием поля.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
