package http

import (
	"net/http"
	"strconv"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	Borrower           string `json:"borrower" validate:"required,hex32"`
	Principal          uint64 `json:"principal" validate:"required,gt=0"`
	InterestRateBps    uint64 `json:"interest_rate_bps" validate:"required,gt=0,lt=10000"`
	DurationSeconds    int64  `json:"duration_seconds" validate:"required,gt=0"`
	CollateralAmount   uint64 `json:"collateral_amount" validate:"required,gt=0"`
	CollateralKind     string `json:"collateral_kind" validate:"required,oneof=native token"`
	CollateralTokenID  string `json:"collateral_token_id" validate:"required_if=CollateralKind token"`
	SuppliedCollateral uint64 `json:"supplied_collateral"`
}

type fundLoanReq struct {
	Lender            string `json:"lender" validate:"required,hex32"`
	SuppliedPrincipal uint64 `json:"supplied_principal" validate:"required,gt=0"`
}

type repayLoanReq struct {
	Borrower string `json:"borrower" validate:"required,hex32"`
	Amount   uint64 `json:"amount" validate:"required,gt=0"`
}

type liquidateLoanReq struct {
	Lender string `json:"lender" validate:"required,hex32"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	asset := domain.NativeAsset()
	if req.CollateralKind == domain.AssetKindToken {
		asset = domain.TokenAsset(req.CollateralTokenID)
	}
	dto, err := h.uc.Request(c.Request().Context(), loan.RequestLoanInput{
		Borrower:           req.Borrower,
		Principal:          req.Principal,
		InterestRateBps:    req.InterestRateBps,
		Duration:           time.Duration(req.DurationSeconds) * time.Second,
		CollateralAmount:   req.CollateralAmount,
		CollateralAsset:    asset,
		SuppliedCollateral: req.SuppliedCollateral,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req fundLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Fund(c.Request().Context(), loan.FundLoanInput{
		LoanID:            loanID,
		Lender:            req.Lender,
		SuppliedPrincipal: req.SuppliedPrincipal,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Repay(c.Request().Context(), loan.RepayLoanInput{
		LoanID:   loanID,
		Borrower: req.Borrower,
		Amount:   req.Amount,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) LiquidateLoan(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req liquidateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), loan.LiquidateLoanInput{
		LoanID: loanID,
		Lender: req.Lender,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func parseLoanID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("loan_id"), 10, 64)
}
