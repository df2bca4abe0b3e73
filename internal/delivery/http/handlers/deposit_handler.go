package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finbridge/broker-funding-service/internal/delivery/http/middleware"
	"github.com/finbridge/broker-funding-service/internal/domain"
	depositusecase "github.com/finbridge/broker-funding-service/internal/usecase/deposit"
	depositdto "github.com/finbridge/broker-funding-service/internal/usecase/dto/deposit"
	"github.com/gin-gonic/gin"
)

type DepositHandler struct {
	uc depositusecase.DepositUsecase
}

func NewDepositHandler(uc depositusecase.DepositUsecase) *DepositHandler {
	return &DepositHandler{uc: uc}
}

type createDepositRequest struct {
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	Currency            string  `json:"currency" binding:"required"`
	DestinationType     string  `json:"destination_type" binding:"required"`
	TradingAccountLogin int64   `json:"trading_account_login"`
}

func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	var req createDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	output, err := h.uc.CreateDeposit(c.Request.Context(), &depositdto.CreateDepositInput{
		UserID:              c.GetString(middleware.UserIDKey),
		Amount:              req.Amount,
		Currency:            req.Currency,
		DestinationType:     req.DestinationType,
		TradingAccountLogin: req.TradingAccountLogin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGateway) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"deposit_id":       output.DepositID,
		"gateway_order_id": output.GatewayOrderID,
		"checkout_url":     output.CheckoutURL,
		"payment_address":  output.PaymentAddress,
		"expires_at":       output.ExpiresAt,
	})
}

func (h *DepositHandler) GetDeposit(c *gin.Context) {
	deposit, err := h.uc.GetDepositByID(c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.renderDepositError(c, err)
		return
	}
	c.JSON(http.StatusOK, depositResponse(deposit))
}

func (h *DepositHandler) ListDeposits(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	output, err := h.uc.GetDeposits(&depositdto.GetDepositsInput{
		UserID: c.GetString(middleware.UserIDKey),
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list deposits"})
		return
	}

	deposits := make([]gin.H, len(output.Deposits))
	for i, deposit := range output.Deposits {
		deposits[i] = depositResponse(deposit)
	}
	c.JSON(http.StatusOK, gin.H{"deposits": deposits, "total": output.Total})
}

// PollDeposit triggers one status query against the gateway. A gateway
// failure means "no new information" and surfaces as 502 with the
// deposit left untouched.
func (h *DepositHandler) PollDeposit(c *gin.Context) {
	deposit, err := h.uc.PollDeposit(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrGateway) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		h.renderDepositError(c, err)
		return
	}
	c.JSON(http.StatusOK, depositResponse(deposit))
}

func (h *DepositHandler) CancelDeposit(c *gin.Context) {
	err := h.uc.CancelDeposit(c.Request.Context(), c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrDepositConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "deposit is not pending"})
			return
		}
		h.renderDepositError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.StatusCancelled)})
}

func (h *DepositHandler) renderDepositError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDepositNotFound), errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": "deposit not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func depositResponse(deposit *domain.Deposit) gin.H {
	resp := gin.H{
		"id":               deposit.ID,
		"amount":           deposit.Amount,
		"currency":         deposit.Currency,
		"destination_type": string(deposit.DestinationType),
		"status":           string(deposit.Status),
		"gateway_order_id": deposit.GatewayOrderID,
		"cregis_status":    string(deposit.GatewayStatus),
		"created_at":       deposit.CreatedAt,
		"updated_at":       deposit.UpdatedAt,
	}
	if deposit.TradingAccountLogin != 0 {
		resp["trading_account_login"] = deposit.TradingAccountLogin
	}
	if deposit.RejectReason != "" {
		resp["reject_reason"] = deposit.RejectReason
	}
	if deposit.GatewayTx != nil {
		resp["checkout_url"] = deposit.GatewayTx.CheckoutURL
		resp["payment_address"] = deposit.GatewayTx.PaymentAddress
		resp["expires_at"] = deposit.GatewayTx.ExpiresAt
	}
	return resp
}
