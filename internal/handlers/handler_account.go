package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/account_movements/internal/apperrors"
	"github.com/SscSPs/account_movements/internal/core/domain"
	portssvc "github.com/SscSPs/account_movements/internal/core/ports/services"
	"github.com/SscSPs/account_movements/internal/dto"
	"github.com/SscSPs/account_movements/internal/middleware"
	"github.com/SscSPs/account_movements/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	registry portssvc.AccountRegistrySvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(registry portssvc.AccountRegistrySvc) *accountHandler {
	return &accountHandler{
		registry: registry,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, registry portssvc.AccountRegistrySvc) {
	h := newAccountHandler(registry)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/deposit", h.deposit)
		accounts.POST("/:accountID/withdraw", h.withdraw)
		accounts.POST("/:accountID/accrue", h.accrue)
		accounts.GET("/:accountID/movements", h.movementHistory)
	}

	rg.POST("/accruals", h.accrueAll)
}

func accountIDOf(acc domain.AccountSnapshot) string { return acc.AccountID }

// respondWithError maps registry errors to HTTP responses.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidOperation), errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Info("Operation rejected", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: err.Error(),
			Cause: apperrors.CauseMessage(err),
		})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action})
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens a checking, savings or business account and deposits the initial balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create account", slog.String("variant", string(req.Variant)))

	acc, err := h.registry.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts in creation order, one page at a time
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	after := ""
	if req.NextToken != "" {
		var err error
		if after, err = pagination.DecodeToken(req.NextToken); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	accounts := h.registry.ListAccounts(c.Request.Context())
	page, next, ok := pagination.Page(accounts, accountIDOf, after, req.Limit)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "pagination token does not match any account"})
		return
	}

	resp := dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(page)}
	if next != "" {
		resp.NextToken = pagination.EncodeToken(next)
	}
	c.JSON(http.StatusOK, resp)
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	acc, err := h.registry.FindByID(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, logger, err, "get account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Non-positive amounts are accepted and leave the account unchanged
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{accountID}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.registry.Deposit(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondWithError(c, logger, err, "deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationResponse(res))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Applies the account's withdrawal rules. Rejections report the chained cause.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount"
// @Success 200 {object} dto.OperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Withdrawal rejected"
// @Router /accounts/{accountID}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.registry.Withdraw(c.Request.Context(), accountID, req.Amount)
	if err != nil {
		respondWithError(c, logger, err, "withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.ToOperationResponse(res))
}

// accrue godoc
// @Summary Post interest or fee
// @Description Credits savings/business interest or charges the checking maintenance fee
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccrualResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{accountID}/accrue [post]
func (h *accountHandler) accrue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	res, err := h.registry.AccrueInterestOrFee(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, logger, err, "accrue interest or fee")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccrualResponse(res))
}

// movementHistory godoc
// @Summary Movement history
// @Description Deposits and withdrawals reconciled with the movement store, oldest first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.MovementHistoryResponse
// @Failure 404 {object} dto.ErrorResponse "Account unknown in memory and in the store"
// @Router /accounts/{accountID}/movements [get]
func (h *accountHandler) movementHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	history, err := h.registry.MovementHistory(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, logger, err, "load movement history")
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementHistoryResponse(history))
}

// accrueAll godoc
// @Summary Month-end accrual run
// @Description Posts interest or fees on every account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccrualRunResponse
// @Router /accruals [post]
func (h *accountHandler) accrueAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustments := h.registry.AccrueAll(c.Request.Context())
	logger.Info("Accrual run completed", slog.Int("accounts", len(adjustments)))
	c.JSON(http.StatusOK, dto.AccrualRunResponse{Adjustments: adjustments})
}
