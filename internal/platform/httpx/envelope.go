// Package httpx shapes every HTTP response into the {success, message, ...}
// envelope and maps handler errors to it.
package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Generic messages returned to clients.
const (
	MsgInternalError   = "Error interno del servidor"
	MsgBadRequest      = "Solicitud inválida"
	MsgNotFound        = "Recurso no encontrado"
	MsgMethodNotAllow  = "Método no permitido"
	MsgTooManyRequests = "Demasiadas solicitudes, intente más tarde"
	MsgPayloadTooLarge = "El cuerpo de la solicitud es demasiado grande"
	MsgTimeout         = "La solicitud excedió el tiempo permitido"
)

// Envelope is the uniform response body. Payload entries are flattened next
// to success and message when encoded.
type Envelope map[string]interface{}

// OK builds a success envelope carrying one payload under key. An empty key
// yields a message-only envelope.
func OK(key string, payload interface{}) Envelope {
	env := Envelope{"success": true}
	if key != "" {
		env[key] = payload
	}
	return env
}

// Message builds a success envelope with only a message.
func Message(msg string) Envelope {
	return Envelope{"success": true, "message": msg}
}

// Fail builds a failure envelope.
func Fail(msg string) Envelope {
	return Envelope{"success": false, "message": msg}
}

// With adds another payload entry to the envelope.
func (e Envelope) With(key string, value interface{}) Envelope {
	e[key] = value
	return e
}

// JSON writes env with the given status.
func JSON(c echo.Context, status int, env Envelope) error {
	return c.JSON(status, env)
}

// Error returns an echo.HTTPError whose message is rendered verbatim in the
// failure envelope.
func Error(status int, msg string) *echo.HTTPError {
	return echo.NewHTTPError(status, msg)
}

// defaultMessage replaces echo's English defaults with client-facing text.
func defaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllow
	case http.StatusTooManyRequests:
		return MsgTooManyRequests
	case http.StatusRequestEntityTooLarge:
		return MsgPayloadTooLarge
	case http.StatusGatewayTimeout, http.StatusServiceUnavailable:
		return MsgTimeout
	}
	if status >= http.StatusInternalServerError {
		return MsgInternalError
	}
	return http.StatusText(status)
}
