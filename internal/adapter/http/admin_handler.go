package http

import (
	"net/http"
	"time"

	"peerlend-backend/internal/usecase/admin"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *admin.Usecase }

func NewAdminHandler(uc *admin.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

type setPlatformFeeReq struct {
	Caller string `json:"caller" validate:"required,hex32"`
	FeeBps uint64 `json:"fee_bps" validate:"lt=10000"`
}

type setGracePeriodReq struct {
	Caller             string `json:"caller" validate:"required,hex32"`
	GracePeriodSeconds int64  `json:"grace_period_seconds" validate:"gte=0"`
}

func (h *AdminHandler) SetPlatformFee(c echo.Context) error {
	var req setPlatformFeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.SetPlatformFee(c.Request().Context(), req.Caller, req.FeeBps); err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]uint64{"fee_bps": req.FeeBps})
}

func (h *AdminHandler) SetGracePeriod(c echo.Context) error {
	var req setGracePeriodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	d := time.Duration(req.GracePeriodSeconds) * time.Second
	if err := h.uc.SetGracePeriod(c.Request().Context(), req.Caller, d); err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"grace_period_seconds": req.GracePeriodSeconds})
}
