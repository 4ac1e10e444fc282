package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/api/metrics"
	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// WalletHandler handles payments, deposits and the subsidy bonus.
type WalletHandler struct {
	wallet ports.WalletService
}

func NewWalletHandler(wallet ports.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

type paymentRequest struct {
	DoctorID     string `json:"doctor_id" validate:"required"`
	IncludeBonus bool   `json:"include_bonus"`
}

type paymentResponse struct {
	Result        string  `json:"result"`
	TransactionID string  `json:"transaction_id"`
	Fee           float64 `json:"fee"`
	Subsidy       float64 `json:"subsidy"`
	WalletBalance float64 `json:"wallet_balance"`
	BonusBalance  float64 `json:"bonus_balance"`
	BonusUnlocked bool    `json:"bonus_unlocked"`
}

type depositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method"`
}

type falseSOSRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
}

type sessionCheckResponse struct {
	Active bool `json:"active"`
}

// Pay handles POST /v1/payments (patient only).
//
// @Summary      Pay for a consultation, optionally unlocking the subsidy bonus
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Payment details"
// @Success      200   {object}  paymentResponse
// @Failure      402   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/payments [post]
func (h *WalletHandler) Pay(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.wallet.PayConsultation(c.Request().Context(), ports.PaymentInput{
		PatientID:    callerID,
		DoctorID:     req.DoctorID,
		IncludeBonus: req.IncludeBonus,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			metrics.PaymentsTotal.WithLabelValues("insufficient_funds").Inc()
		} else {
			metrics.PaymentsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PaymentsTotal.WithLabelValues("success").Inc()
	if result.Subsidy > 0 {
		metrics.SubsidyAppliedTotal.Add(result.Subsidy)
	}

	return c.JSON(http.StatusOK, paymentResponse{
		Result:        "success",
		TransactionID: result.TransactionID,
		Fee:           result.Fee,
		Subsidy:       result.Subsidy,
		WalletBalance: result.WalletBalance,
		BonusBalance:  result.BonusBalance,
		BonusUnlocked: result.BonusUnlocked,
	})
}

// Deposit handles POST /v1/wallet/deposit.
//
// @Summary      Credit the caller's wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      depositRequest  true  "Deposit details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /v1/wallet/deposit [post]
func (h *WalletHandler) Deposit(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req depositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.wallet.Deposit(c.Request().Context(), ports.DepositInput{
		UserID: callerID,
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ActivateBonus handles POST /v1/wallet/bonus.
//
// @Summary      Unlock the clinical subsidy bonus pool
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      402  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/wallet/bonus [post]
func (h *WalletHandler) ActivateBonus(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.wallet.ActivateBonus(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// FalseSOS handles POST /v1/sos/false-alarm (clinical roles).
//
// @Summary      Apply the false-SOS penalty to a patient
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      falseSOSRequest  true  "Patient to penalize"
// @Success      200   {object}  domain.Transaction
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/sos/false-alarm [post]
func (h *WalletHandler) FalseSOS(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req falseSOSRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.wallet.PenalizeFalseSOS(c.Request().Context(), req.PatientID, callerID)
	if err != nil {
		return err
	}

	metrics.SOSTotal.WithLabelValues("false_alarm").Inc()
	return c.JSON(http.StatusOK, tx)
}

// SessionCheck handles GET /v1/sessions/:doctorID.
//
// @Summary      Check whether a prior payment still covers a call with the doctor
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        doctorID  path      string  true  "Doctor id"
// @Success      200       {object}  sessionCheckResponse
// @Router       /v1/sessions/{doctorID} [get]
func (h *WalletHandler) SessionCheck(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	active, err := h.wallet.HasActiveSession(c.Request().Context(), callerID, c.Param("doctorID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionCheckResponse{Active: active})
}
