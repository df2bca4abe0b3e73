package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finbridge/broker-funding-service/internal/delivery/http/middleware"
	"github.com/finbridge/broker-funding-service/internal/domain"
	withdrawaldto "github.com/finbridge/broker-funding-service/internal/usecase/dto/withdrawal"
	withdrawalusecase "github.com/finbridge/broker-funding-service/internal/usecase/withdrawal"
	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	uc withdrawalusecase.WithdrawalUsecase
}

func NewWithdrawalHandler(uc withdrawalusecase.WithdrawalUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

type createWithdrawalRequest struct {
	TradingAccountLogin int64   `json:"trading_account_login" binding:"required"`
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	Currency            string  `json:"currency" binding:"required"`
	WalletAddress       string  `json:"wallet_address" binding:"required"`
}

func (h *WithdrawalHandler) CreateWithdrawal(c *gin.Context) {
	var req createWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	withdrawal, err := h.uc.CreateWithdrawal(c.Request.Context(), &withdrawaldto.CreateWithdrawalInput{
		UserID:              c.GetString(middleware.UserIDKey),
		TradingAccountLogin: req.TradingAccountLogin,
		Amount:              req.Amount,
		Currency:            req.Currency,
		WalletAddress:       req.WalletAddress,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, withdrawalResponse(withdrawal))
}

func (h *WithdrawalHandler) GetWithdrawal(c *gin.Context) {
	withdrawal, err := h.uc.GetWithdrawalByID(c.Param("id"), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawalResponse(withdrawal))
}

func (h *WithdrawalHandler) ListMyWithdrawals(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	output, err := h.uc.GetWithdrawalsByUserID(c.GetString(middleware.UserIDKey), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawalListResponse(output))
}

// Admin endpoints.

func (h *WithdrawalHandler) AdminListWithdrawals(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	output, err := h.uc.ListWithdrawals(&withdrawaldto.ListWithdrawalsInput{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, withdrawalListResponse(output))
}

func (h *WithdrawalHandler) ApproveWithdrawal(c *gin.Context) {
	err := h.uc.ApproveWithdrawal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCreditGateway) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.WithdrawalApproved)})
}

type rejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *WithdrawalHandler) RejectWithdrawal(c *gin.Context) {
	var req rejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reject reason is required"})
		return
	}

	err := h.uc.RejectWithdrawal(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		h.renderWithdrawalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(domain.WithdrawalRejected)})
}

func (h *WithdrawalHandler) renderWithdrawalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrWithdrawalNotFound), errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": "withdrawal not found"})
	case errors.Is(err, domain.ErrWithdrawalConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "withdrawal is not pending"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func withdrawalResponse(withdrawal *domain.Withdrawal) gin.H {
	resp := gin.H{
		"id":                    withdrawal.ID,
		"trading_account_login": withdrawal.TradingAccountLogin,
		"amount":                withdrawal.Amount,
		"currency":              withdrawal.Currency,
		"wallet_address":        withdrawal.WalletAddress,
		"status":                string(withdrawal.Status),
		"created_at":            withdrawal.CreatedAt,
		"updated_at":            withdrawal.UpdatedAt,
	}
	if withdrawal.RejectReason != "" {
		resp["reject_reason"] = withdrawal.RejectReason
	}
	return resp
}

func withdrawalListResponse(output *withdrawaldto.ListWithdrawalsOutput) gin.H {
	withdrawals := make([]gin.H, len(output.Withdrawals))
	for i, withdrawal := range output.Withdrawals {
		withdrawals[i] = withdrawalResponse(withdrawal)
	}
	return gin.H{"withdrawals": withdrawals, "total": output.Total}
}
