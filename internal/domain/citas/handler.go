package citas

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinica/citas/internal/platform/httpx"
)

// Client-facing messages.
const (
	MsgBooked          = "Cita agendada exitosamente"
	MsgRescheduled     = "Cita reprogramada exitosamente"
	MsgCancelled       = "Cita cancelada exitosamente"
	MsgNotFound        = "Cita no encontrada"
	MsgSlotUnavailable = "El horario seleccionado no está disponible"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the appointment API on g, normally /api/citas.
// Static segments win over :id in echo's router.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListAppointments)
	g.GET("/doctores", h.ListDoctors)
	g.GET("/pacientes", h.ListPatients)
	g.GET("/horarios-disponibles/:doctorId/:fecha", h.AvailableSlots)
	g.GET("/:id", h.GetAppointment)
	g.POST("/agendar", h.Book)
	g.PUT("/reprogramar/:id", h.Reschedule)
	g.PUT("/cancelar/:id", h.Cancel)
}

// toHTTPError maps service errors to responses. Anything unrecognised is a
// storage failure and is rendered as a generic 500 by the error handler.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return httpx.Error(http.StatusBadRequest, MsgSlotUnavailable)
	case errors.Is(err, ErrNotFound):
		return httpx.Error(http.StatusNotFound, MsgNotFound)
	case errors.Is(err, ErrInvalidRequest):
		return httpx.Error(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// bindError keeps a 413 raised by the body limit while decoding; any other
// decode failure is a 400.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		var inner *echo.HTTPError
		if errors.As(he.Internal, &inner) && inner.Code == http.StatusRequestEntityTooLarge {
			return inner
		}
	}
	return toHTTPError(invalid("cuerpo de la solicitud inválido"))
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("%s debe ser un entero positivo", name)
	}
	return id, nil
}

func (h *Handler) ListAppointments(c echo.Context) error {
	citas, err := h.svc.ListAppointments(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.OK("citas", citas))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return toHTTPError(err)
	}
	cita, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.OK("cita", cita))
}

func (h *Handler) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	cita, err := h.svc.Book(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.Message(MsgBooked).With("citaId", cita.ID))
}

func (h *Handler) AvailableSlots(c echo.Context) error {
	doctorID, err := parseID(c, "doctorId")
	if err != nil {
		return toHTTPError(err)
	}
	slots, err := h.svc.AvailableSlots(c.Request().Context(), doctorID, c.Param("fecha"))
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.OK("horariosDisponibles", slots))
}

func (h *Handler) Reschedule(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return toHTTPError(err)
	}
	var req RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := h.svc.Reschedule(c.Request().Context(), id, req); err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.Message(MsgRescheduled))
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return toHTTPError(err)
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.Message(MsgCancelled))
}

func (h *Handler) ListDoctors(c echo.Context) error {
	doctores, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.OK("doctores", doctores))
}

func (h *Handler) ListPatients(c echo.Context) error {
	pacientes, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return httpx.JSON(c, http.StatusOK, httpx.OK("pacientes", pacientes))
}
