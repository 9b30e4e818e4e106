package handlers

import (
	"errors"
	"net/http"

	accountRepo "bookline/database/repository/account"
	"bookline/middleware"
	"bookline/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler covers the small account surface this service owns: push
// token registration. Signup and login belong to the identity backend.
type AccountHandler struct {
	Accounts accountRepo.AccountRepository
}

func NewAccountHandler(accounts accountRepo.AccountRepository) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

// UpdateFCMTokenHandler handles PUT /api/accounts/fcm-token.
func (h *AccountHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Accounts.SetFCMToken(c.Request.Context(), middleware.CallerID(c), req.FCMToken)
	if errors.Is(err, accountRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "account not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "failed to store push token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
