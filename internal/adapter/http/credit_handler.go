package http

import (
	"net/http"

	"cupo-backend/internal/usecase/credit"

	"github.com/labstack/echo/v4"
)

type CreditHandler struct{ uc *credit.Usecase }

func NewCreditHandler(uc *credit.Usecase) *CreditHandler { return &CreditHandler{uc: uc} }

func (h *CreditHandler) Get(c echo.Context) error {
	if _, ok := requireActor(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateProfileReq struct {
	CurrentLimitCOP  *float64 `json:"current_limit_cop" validate:"omitempty,gte=0,dec2"`
	MaxLimitCOP      *float64 `json:"max_limit_cop"     validate:"omitempty,gte=0,dec2"`
	RiskTier         *string  `json:"risk_tier"         validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	IsSuspended      *bool    `json:"is_suspended"`
	SuspensionReason *string  `json:"suspension_reason" validate:"omitempty,min=3"`
}

func (h *CreditHandler) Update(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.AdminUpdate(c.Request().Context(), credit.AdminUpdateInput{
		UserID:           c.Param("user_id"),
		ActorID:          actor,
		CurrentLimitCOP:  req.CurrentLimitCOP,
		MaxLimitCOP:      req.MaxLimitCOP,
		RiskTier:         req.RiskTier,
		IsSuspended:      req.IsSuspended,
		SuspensionReason: req.SuspensionReason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
