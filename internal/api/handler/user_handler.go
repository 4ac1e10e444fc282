package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// UserHandler handles roster, profile and diagnosis operations.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

type updateUserRequest struct {
	Name            *string             `json:"name,omitempty"`
	Email           *string             `json:"email,omitempty" validate:"omitempty,email"`
	Avatar          *string             `json:"avatar,omitempty"`
	WalletBalance   *float64            `json:"wallet_balance,omitempty"`
	BonusBalance    *float64            `json:"bonus_balance,omitempty"`
	IsSubscribed    *bool               `json:"is_subscribed,omitempty"`
	IsOnline        *bool               `json:"is_online,omitempty"`
	ConsultationFee *float64            `json:"consultation_fee,omitempty" validate:"omitempty,gte=0"`
	Specialization  *string             `json:"specialization,omitempty"`
	Location        *string             `json:"location,omitempty"`
	BankAccount     *domain.BankAccount `json:"bank_account,omitempty"`
}

type diagnosisRequest struct {
	Condition    string `json:"condition" validate:"required"`
	Notes        string `json:"notes"`
	Prescription string `json:"prescription"`
}

type freezeRequest struct {
	Frozen bool `json:"frozen"`
}

// List handles GET /v1/users (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.directory.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.directory.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/:id — self or admin.
//
// @Summary      Partially update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	callerID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id != callerID && !role.IsAdmin() {
		return domain.ErrForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.directory.Update(c.Request().Context(), id, ports.UserUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Avatar:          req.Avatar,
		WalletBalance:   req.WalletBalance,
		BonusBalance:    req.BonusBalance,
		IsSubscribed:    req.IsSubscribed,
		IsOnline:        req.IsOnline,
		ConsultationFee: req.ConsultationFee,
		Specialization:  req.Specialization,
		Location:        req.Location,
		BankAccount:     req.BankAccount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Freeze handles POST /v1/users/:id/freeze (admin only).
//
// @Summary      Freeze or unfreeze an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "User id"
// @Param        body  body      freezeRequest  true  "Freeze flag"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id}/freeze [post]
func (h *UserHandler) Freeze(c echo.Context) error {
	var req freezeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.directory.SetFrozen(c.Request().Context(), c.Param("id"), req.Frozen)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListDoctors handles GET /v1/doctors.
//
// @Summary      List the doctor roster with live presence
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /v1/doctors [get]
func (h *UserHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.directory.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctors)
}

// Transactions handles GET /v1/users/:id/transactions — self or admin.
//
// @Summary      Get a user's transaction history (newest first)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   domain.Transaction
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id}/transactions [get]
func (h *UserHandler) Transactions(c echo.Context) error {
	callerID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id != callerID && !role.IsAdmin() {
		return domain.ErrForbidden
	}

	txs, err := h.directory.Transactions(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}

// AddDiagnosis handles POST /v1/patients/:id/diagnoses (clinical roles).
//
// @Summary      Record a diagnosis on a patient's medical record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Patient id"
// @Param        body  body      diagnosisRequest  true  "Diagnosis details"
// @Success      201   {object}  domain.Diagnosis
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/patients/{id}/diagnoses [post]
func (h *UserHandler) AddDiagnosis(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d, err := h.directory.AddDiagnosis(c.Request().Context(), ports.DiagnosisInput{
		PatientID:    c.Param("id"),
		DoctorID:     callerID,
		Condition:    req.Condition,
		Notes:        req.Notes,
		Prescription: req.Prescription,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

// Heartbeat handles POST /v1/presence/heartbeat.
//
// @Summary      Refresh the caller's online presence marker
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      204  "refreshed"
// @Router       /v1/presence/heartbeat [post]
func (h *UserHandler) Heartbeat(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.directory.Heartbeat(c.Request().Context(), callerID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
