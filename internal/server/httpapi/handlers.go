package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	UserID    string `json:"user_id"`
	CSRFToken string `json:"csrf_token"`
}

type transferRequest struct {
	SourceAccountID      string `json:"source_account_id" binding:"required"`
	DestinationAccountID string `json:"destination_account_id" binding:"required"`
	Amount               int64  `json:"amount" binding:"required"`
}

type accountResponse struct {
	ID        string `json:"account_id"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
}

type transferResponse struct {
	ID                   string `json:"transfer_id"`
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               int64  `json:"amount"`
	SourceBalance        int64  `json:"source_balance"`
	DestinationBalance   int64  `json:"destination_balance"`
	CreatedAt            string `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps any internal error to its public projection. Every
// failure path funnels through here so responses for distinct internal
// causes stay byte-identical.
func writeError(c *gin.Context, err error) {
	pub := common.Public(err)
	c.AbortWithStatusJSON(pub.Status, errorResponse{Error: pub.Kind})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorInvalidRequest)
		return
	}

	res, err := s.bank.Login(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	s.cookies.SetSessionCookie(c, res.SessionToken)
	c.JSON(http.StatusOK, loginResponse{UserID: res.UserID, CSRFToken: res.CSRFToken})
}

func (s *Server) handleLogout(c *gin.Context) {
	token := s.cookies.GetSessionToken(c)
	if err := s.bank.Logout(c.Request.Context(), token, c.GetHeader(CSRFHeader)); err != nil {
		if !errors.Is(err, common.ErrorSessionInvalid) {
			writeError(c, err)
			return
		}
		// Revoking an already dead session is not an error.
	}

	s.cookies.ClearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleViewAccount(c *gin.Context) {
	token := s.cookies.GetSessionToken(c)
	acc, err := s.bank.ViewAccount(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		ID:        acc.ID,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListTransfers(c *gin.Context) {
	token := s.cookies.GetSessionToken(c)
	records, err := s.bank.ListTransfers(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]transferResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toTransferResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorInvalidRequest)
		return
	}

	token := s.cookies.GetSessionToken(c)
	rec, err := s.bank.Transfer(c.Request.Context(), token, c.GetHeader(CSRFHeader), models.TransferRequest{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransferResponse(*rec))
}

func toTransferResponse(r models.TransferRecord) transferResponse {
	return transferResponse{
		ID:                   r.ID,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		SourceBalance:        r.SourceBalance,
		DestinationBalance:   r.DestinationBalance,
		CreatedAt:            r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
