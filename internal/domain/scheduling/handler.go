package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// slotTimeLayout is how slot boundaries are rendered in availability
// responses, in the caller's requested zone.
const slotTimeLayout = "2006-01-02 15:04"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.GetAvailability)
	api.POST("/appointments", h.Book)
	api.PUT("/appointments/:id", h.Reschedule)
	api.GET("/practitioners/:id/appointments", h.DayAppointments)
	api.POST("/practitioners/:id/unavailability", h.DeclareUnavailability)
}

// renderedSlot is a slot with boundaries formatted in the caller's zone.
type renderedSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type availabilityResponse struct {
	PractitionerID   uuid.UUID      `json:"practitioner_id"`
	PractitionerName string         `json:"practitioner_name"`
	Slots            []renderedSlot `json:"slots"`
}

// callerZone resolves the Time-Zone request header, defaulting to UTC. The
// header only affects rendering; all stored and compared instants are
// absolute.
func callerZone(c echo.Context) (*time.Location, error) {
	name := c.Request().Header.Get("Time-Zone")
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &RequestError{msg: "unknown Time-Zone header: " + name}
	}
	return loc, nil
}

// GetAvailability handles GET /appointments?type=STANDARD&date=2026-09-14.
func (h *Handler) GetAvailability(c echo.Context) error {
	t, err := ParseAppointmentType(c.QueryParam("type"))
	if err != nil {
		return httpError(err)
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}
	zone, err := callerZone(c)
	if err != nil {
		return httpError(err)
	}

	availability, err := h.svc.GetAvailability(c.Request().Context(), t, date)
	if err != nil {
		return httpError(err)
	}

	resp := make([]availabilityResponse, 0, len(availability))
	for _, pa := range availability {
		slots := make([]renderedSlot, 0, len(pa.Slots))
		for _, s := range pa.Slots {
			slots = append(slots, renderedSlot{
				Start: s.Start.In(zone).Format(slotTimeLayout),
				End:   s.End.In(zone).Format(slotTimeLayout),
			})
		}
		resp = append(resp, availabilityResponse{
			PractitionerID:   pa.PractitionerID,
			PractitionerName: pa.PractitionerName,
			Slots:            slots,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type bookRequest struct {
	PractitionerID uuid.UUID `json:"practitioner_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	Type           string    `json:"type"`
	StartAt        string    `json:"start_at"`
	Comment        *string   `json:"comment,omitempty"`
}

// Book handles POST /appointments.
func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := ParseAppointmentType(req.Type)
	if err != nil {
		return httpError(err)
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at must be an RFC 3339 instant")
	}

	appt, err := h.svc.Book(c.Request().Context(), BookingRequest{
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
		Type:           t,
		StartAt:        start,
		Comment:        req.Comment,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, appt)
}

type rescheduleRequest struct {
	StartAt string `json:"start_at"`
	Version int    `json:"version"`
}

// Reschedule handles PUT /appointments/:id.
func (h *Handler) Reschedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at must be an RFC 3339 instant")
	}

	appt, err := h.svc.Reschedule(c.Request().Context(), id, start, req.Version)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

// DayAppointments handles GET /practitioners/:id/appointments?date=2026-09-14.
func (h *Handler) DayAppointments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	}

	appts, err := h.svc.DayAppointments(c.Request().Context(), id, date)
	if err != nil {
		return httpError(err)
	}
	if appts == nil {
		appts = []*Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

type unavailabilityRequest struct {
	StartAt string  `json:"start_at"`
	EndAt   string  `json:"end_at"`
	Reason  *string `json:"reason,omitempty"`
}

// DeclareUnavailability handles POST /practitioners/:id/unavailability.
func (h *Handler) DeclareUnavailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req unavailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at must be an RFC 3339 instant")
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_at must be an RFC 3339 instant")
	}

	u, err := h.svc.DeclareUnavailability(c.Request().Context(), id, start, end, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, u)
}

// httpError maps engine errors onto HTTP statuses. Unknown errors become an
// opaque 500 so storage details never leak to clients.
func httpError(err error) *echo.HTTPError {
	var reqErr *RequestError
	var valErr *ValidationError
	switch {
	case errors.As(err, &reqErr), errors.As(err, &valErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrStaleVersion):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
