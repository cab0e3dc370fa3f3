package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ashecone/expense-tracker-api/internal/domain"
	"github.com/ashecone/expense-tracker-api/internal/service"
	"github.com/ashecone/expense-tracker-api/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles ledger HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create and update request body.
// amount accepts a JSON number or a numeric string.
type TransactionRequest struct {
	UserID      int32       `json:"userId"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount" swaggertype:"number"`
	Description *string     `json:"description,omitempty"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32       `json:"id"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount" swaggertype:"number"`
	Description *string     `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// RecentTransactionsResponse is the bounded listing with its balance
type RecentTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Balance      json.Number           `json:"balance" swaggertype:"number"`
	Summary      SummaryResponse       `json:"summary"`
}

// AllTransactionsResponse is the full listing with its summary
type AllTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Summary      SummaryResponse       `json:"summary"`
}

// FilteredTransactionsResponse is the result of a filter query
type FilteredTransactionsResponse struct {
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionDetailResponse wraps a single transaction
type TransactionDetailResponse struct {
	Transaction TransactionResponse `json:"transaction"`
}

// TransactionWrittenResponse acknowledges a create or update
type TransactionWrittenResponse struct {
	Message       string `json:"message"`
	TransactionID int32  `json:"transactionId"`
}

// TransactionDeletedResponse acknowledges a delete
type TransactionDeletedResponse struct {
	Message   string `json:"message"`
	DeletedID int32  `json:"deletedId"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      money(t.Amount),
		Description: t.Description,
		Category:    t.CategoryName,
		Date:        util.FormatDate(t.Date),
	}
}

func toTransactionResponses(transactions []*domain.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}
	return resp
}

// toInput parses the request into service input. The returned ValidationError
// list is non-empty when amount is malformed.
func (req *TransactionRequest) toInput() (service.TransactionInput, []ValidationError) {
	raw := strings.TrimSpace(req.Amount.String())
	if raw == "" {
		return service.TransactionInput{}, []ValidationError{{Field: "amount", Message: "Amount is required"}}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return service.TransactionInput{}, []ValidationError{{Field: "amount", Message: "Must be a valid decimal number"}}
	}

	return service.TransactionInput{
		UserID:      req.UserID,
		Type:        domain.TransactionType(strings.TrimSpace(req.Type)),
		Amount:      amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	}, nil
}

// parseUserIDQuery reads ?userId. A missing value yields 0, which the service rejects.
func parseUserIDQuery(c echo.Context) (int32, bool) {
	raw := strings.TrimSpace(c.QueryParam("userId"))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// AddTransaction godoc
// @Summary Add a transaction
// @Description Record an income or expense; the category is created on first use
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction"
// @Success 201 {object} TransactionWrittenResponse
// @Failure 400 {object} ProblemDetails
// @Router /users/transactions [post]
func (h *TransactionHandler) AddTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := req.toInput()
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	id, err := h.transactionService.Add(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "Failed to add transaction")
	}

	log.Info().Int32("user_id", input.UserID).Int32("transaction_id", id).Str("type", string(input.Type)).Msg("Transaction created")

	return c.JSON(http.StatusCreated, TransactionWrittenResponse{
		Message:       "Transaction added successfully",
		TransactionID: id,
	})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Replace all mutable fields of a transaction owned by userId
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} TransactionWrittenResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /users/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, ok := parsePathID(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := req.toInput()
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	if err := h.transactionService.Update(c.Request().Context(), id, input); err != nil {
		return respondError(c, err, "Failed to update transaction")
	}

	log.Info().Int32("user_id", input.UserID).Int32("transaction_id", id).Msg("Transaction updated")

	return c.JSON(http.StatusOK, TransactionWrittenResponse{
		Message:       "Transaction updated successfully",
		TransactionID: id,
	})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Remove a transaction; when userId is given only that user's row is removed
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Param userId query int false "Owning user ID"
// @Success 200 {object} TransactionDeletedResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /users/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, ok := parsePathID(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return NewValidationError(c, "Invalid userId", nil)
	}

	if err := h.transactionService.Delete(c.Request().Context(), id, userID); err != nil {
		return respondError(c, err, "Failed to delete transaction")
	}

	log.Info().Int32("transaction_id", id).Msg("Transaction deleted")

	return c.JSON(http.StatusOK, TransactionDeletedResponse{
		Message:   "Transaction deleted successfully",
		DeletedID: id,
	})
}

// GetTransaction godoc
// @Summary Get a transaction
// @Description Full detail of one transaction including description and category name
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /users/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, ok := parsePathID(c)
	if !ok {
		return NewNotFoundError(c, domain.ErrTransactionNotFound.Error())
	}

	transaction, err := h.transactionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, TransactionDetailResponse{Transaction: toTransactionResponse(transaction)})
}

// ListRecentTransactions godoc
// @Summary Recent transactions
// @Description The first five transactions under the requested ordering, with their balance
// @Tags transactions
// @Produce json
// @Param userId query int true "User ID"
// @Param orderBy query string false "date, amount, type or id" default(date)
// @Param order query string false "asc or desc" default(desc)
// @Success 200 {object} RecentTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Router /users/transactions [get]
func (h *TransactionHandler) ListRecentTransactions(c echo.Context) error {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return NewValidationError(c, "Invalid userId", nil)
	}

	list, err := h.transactionService.ListLimited(c.Request().Context(), userID,
		c.QueryParam("orderBy"), c.QueryParam("order"), domain.DefaultRecentLimit)
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, RecentTransactionsResponse{
		Transactions: toTransactionResponses(list.Transactions),
		Balance:      money(list.Summary.Balance),
		Summary:      toSummaryResponse(list.Summary),
	})
}

// ListAllTransactions godoc
// @Summary All transactions
// @Description Every transaction of the user with the aggregate summary
// @Tags transactions
// @Produce json
// @Param userId query int true "User ID"
// @Param orderBy query string false "date, amount, type or id" default(date)
// @Param order query string false "asc or desc" default(desc)
// @Success 200 {object} AllTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Router /users/transactions/all [get]
func (h *TransactionHandler) ListAllTransactions(c echo.Context) error {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return NewValidationError(c, "Invalid userId", nil)
	}

	list, err := h.transactionService.List(c.Request().Context(), userID, c.QueryParam("orderBy"), c.QueryParam("order"))
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, AllTransactionsResponse{
		Transactions: toTransactionResponses(list.Transactions),
		Summary:      toSummaryResponse(list.Summary),
	})
}

// FilterTransactions godoc
// @Summary Filter transactions
// @Description Narrow a user's transactions by inclusive date range, type and category
// @Tags transactions
// @Produce json
// @Param userId query int true "User ID"
// @Param startDate query string false "Start date (YYYY-MM-DD), requires endDate"
// @Param endDate query string false "End date (YYYY-MM-DD), requires startDate"
// @Param type query string false "income or expense"
// @Param category query string false "Exact category name"
// @Success 200 {object} FilteredTransactionsResponse
// @Failure 400 {object} ProblemDetails
// @Router /users/transactions/filter [get]
func (h *TransactionHandler) FilterTransactions(c echo.Context) error {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return NewValidationError(c, "Invalid userId", nil)
	}

	transactions, err := h.transactionService.Filter(c.Request().Context(), service.FilterInput{
		UserID:    userID,
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
		Type:      c.QueryParam("type"),
		Category:  c.QueryParam("category"),
	})
	if err != nil {
		return respondError(c, err, "Failed to filter transactions")
	}

	return c.JSON(http.StatusOK, FilteredTransactionsResponse{
		Count:        len(transactions),
		Transactions: toTransactionResponses(transactions),
	})
}
