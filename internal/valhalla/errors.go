package valhalla

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ProviderError - отказ внешнего маршрутизатора. HTTPStatus заполнен, когда
// сам HTTP-вызов вернул неуспешный статус; TripStatus - когда провайдер
// сообщил об ошибке внутри успешного ответа (trip.status != 0).
type ProviderError struct {
	HTTPStatus int
	TripStatus int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("valhalla: HTTP %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("valhalla: trip status %d: %s", e.TripStatus, e.Message)
}

// isGatewayTimeout определяет отказы, после которых имеет смысл одна
// повторная попытка без исключений: таймауты и ошибки шлюза провайдера.
func isGatewayTimeout(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		switch providerErr.HTTPStatus {
		case 408, 502, 503, 504:
			return true
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
