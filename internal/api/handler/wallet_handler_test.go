package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

type stubWalletService struct {
	payFn      func(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error)
	penalizeFn func(ctx context.Context, patientID, doctorID string) (*domain.Transaction, error)
	depositFn  func(ctx context.Context, in ports.DepositInput) (*domain.User, error)
	activateFn func(ctx context.Context, userID string) (*domain.User, error)
	sessionFn  func(ctx context.Context, patientID, doctorID string) (bool, error)
}

func (s *stubWalletService) PayConsultation(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
	return s.payFn(ctx, in)
}

func (s *stubWalletService) PenalizeFalseSOS(ctx context.Context, patientID, doctorID string) (*domain.Transaction, error) {
	return s.penalizeFn(ctx, patientID, doctorID)
}

func (s *stubWalletService) Deposit(ctx context.Context, in ports.DepositInput) (*domain.User, error) {
	return s.depositFn(ctx, in)
}

func (s *stubWalletService) ActivateBonus(ctx context.Context, userID string) (*domain.User, error) {
	return s.activateFn(ctx, userID)
}

func (s *stubWalletService) HasActiveSession(ctx context.Context, patientID, doctorID string) (bool, error) {
	return s.sessionFn(ctx, patientID, doctorID)
}

// authedContext builds a context carrying the claims the Auth
// middleware would have injected.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID string, role domain.Role) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", string(role))
	return c
}

func TestWalletHandler_Pay_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		payFn: func(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
			if in.PatientID != "u-10" || in.DoctorID != "u-02" || !in.IncludeBonus {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.PaymentResult{
				TransactionID: "tx-1",
				Fee:           25,
				Subsidy:       10,
				WalletBalance: 25,
				BonusBalance:  90,
				BonusUnlocked: true,
			}, nil
		},
	}
	handler := NewWalletHandler(stub)

	body := strings.NewReader(`{"doctor_id":"u-02","include_bonus":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-10", domain.RolePatient)

	if err := handler.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["result"] != "success" || resp["transaction_id"] != "tx-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp["wallet_balance"] != 25.0 || resp["bonus_balance"] != 90.0 {
		t.Fatalf("unexpected balances: %+v", resp)
	}
}

func TestWalletHandler_Pay_InsufficientFunds(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		payFn: func(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}
	handler := NewWalletHandler(stub)

	body := strings.NewReader(`{"doctor_id":"u-02"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-10", domain.RolePatient)

	if err := handler.Pay(c); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestWalletHandler_Pay_NoClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		payFn: func(ctx context.Context, in ports.PaymentInput) (*ports.PaymentResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewWalletHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(`{"doctor_id":"u-02"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Pay(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestWalletHandler_Deposit_CallerIsTarget(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		depositFn: func(ctx context.Context, in ports.DepositInput) (*domain.User, error) {
			if in.UserID != "u-10" || in.Amount != 100 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u-10", WalletBalance: 150}, nil
		},
	}
	handler := NewWalletHandler(stub)

	body := strings.NewReader(`{"amount":100}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/wallet/deposit", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-10", domain.RolePatient)

	if err := handler.Deposit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWalletHandler_Deposit_RejectsNonPositive(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		depositFn: func(ctx context.Context, in ports.DepositInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewWalletHandler(stub)

	body := strings.NewReader(`{"amount":-5}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/wallet/deposit", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-10", domain.RolePatient)

	err := handler.Deposit(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestWalletHandler_FalseSOS_CallerIsDoctor(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		penalizeFn: func(ctx context.Context, patientID, doctorID string) (*domain.Transaction, error) {
			if patientID != "u-10" || doctorID != "u-02" {
				t.Fatalf("unexpected args: %s %s", patientID, doctorID)
			}
			return &domain.Transaction{ID: "tx-2", Method: "DEDUCTION"}, nil
		},
	}
	handler := NewWalletHandler(stub)

	body := strings.NewReader(`{"patient_id":"u-10"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/sos/false-alarm", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-02", domain.RoleDoctor)

	if err := handler.FalseSOS(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWalletHandler_SessionCheck(t *testing.T) {
	e := newTestEcho()
	stub := &stubWalletService{
		sessionFn: func(ctx context.Context, patientID, doctorID string) (bool, error) {
			if patientID != "u-10" || doctorID != "u-02" {
				t.Fatalf("unexpected args: %s %s", patientID, doctorID)
			}
			return true, nil
		},
	}
	handler := NewWalletHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/u-02", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u-10", domain.RolePatient)
	c.SetParamNames("doctorID")
	c.SetParamValues("u-02")

	if err := handler.SessionCheck(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["active"] != true {
		t.Fatalf("expected active session: %+v", resp)
	}
}
