package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/api/metrics"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// CallHandler exposes the transient call and SOS signaling state.
type CallHandler struct {
	calls ports.CallService
}

func NewCallHandler(calls ports.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

type initiateCallRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

type pendingSOSResponse struct {
	CallerID string `json:"caller_id,omitempty"`
	Pending  bool   `json:"pending"`
}

// Initiate handles POST /v1/calls.
//
// @Summary      Start a ringing call toward a receiver
// @Tags         calls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      initiateCallRequest  true  "Receiver"
// @Success      201   {object}  domain.CallSession
// @Failure      409   {object}  map[string]string
// @Router       /v1/calls [post]
func (h *CallHandler) Initiate(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req initiateCallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.calls.Initiate(c.Request().Context(), callerID, req.ReceiverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

// Accept handles POST /v1/calls/accept.
//
// @Summary      Accept the ringing call
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CallSession
// @Failure      404  {object}  map[string]string
// @Router       /v1/calls/accept [post]
func (h *CallHandler) Accept(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	session, err := h.calls.Accept(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// End handles POST /v1/calls/end.
//
// @Summary      End the active call and clear any pending SOS
// @Tags         calls
// @Security     BearerAuth
// @Success      204  "cleared"
// @Router       /v1/calls/end [post]
func (h *CallHandler) End(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	if err := h.calls.End(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Active handles GET /v1/calls/active.
//
// @Summary      Get the active call, if any
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CallSession
// @Success      204  "no active call"
// @Router       /v1/calls/active [get]
func (h *CallHandler) Active(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	session, ok := h.calls.Active(c.Request().Context())
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, session)
}

// InitiateSOS handles POST /v1/sos.
//
// @Summary      Raise an SOS awaiting a responder
// @Tags         sos
// @Security     BearerAuth
// @Success      204  "raised"
// @Router       /v1/sos [post]
func (h *CallHandler) InitiateSOS(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.calls.InitiateSOS(c.Request().Context(), callerID); err != nil {
		return err
	}
	metrics.SOSTotal.WithLabelValues("raised").Inc()
	return c.NoContent(http.StatusNoContent)
}

// RespondSOS handles POST /v1/sos/respond. The responder claims the
// pending SOS and is connected immediately.
//
// @Summary      Claim the pending SOS
// @Tags         sos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CallSession
// @Failure      404  {object}  map[string]string
// @Router       /v1/sos/respond [post]
func (h *CallHandler) RespondSOS(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	session, err := h.calls.RespondSOS(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	metrics.SOSTotal.WithLabelValues("claimed").Inc()
	return c.JSON(http.StatusOK, session)
}

// PendingSOS handles GET /v1/sos/pending.
//
// @Summary      Check for a pending SOS
// @Tags         sos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingSOSResponse
// @Router       /v1/sos/pending [get]
func (h *CallHandler) PendingSOS(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	callerID, ok := h.calls.PendingSOS(c.Request().Context())
	return c.JSON(http.StatusOK, pendingSOSResponse{CallerID: callerID, Pending: ok})
}
