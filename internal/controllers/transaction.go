package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}
	{
		r.OPTIONS("/summary", httputil.OptionsGet)
		r.GET("/summary", co.GetTransactionSummary)
	}
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PUT("/:id", co.UpdateTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	optionsDetail[models.Transaction](co, c, models.OwnedBy)
}

// CreateTransaction creates a transaction
//
//	@Summary		Create transaction
//	@Description	Creates a new transaction. The amount is stored as sent.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201			{object}	models.Transaction
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			transaction	body		TransactionCreate	true	"Transaction"
//	@Router			/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data TransactionCreate
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, data.UserID); err != nil {
		abort(c, err)
		return
	}

	transaction := data.model(p.ID)
	err = co.DB.Create(&transaction).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions returns the transactions of the user
//
//	@Summary		List transactions
//	@Description	Returns the transactions of the authenticated user, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{array}		models.Transaction
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			accountId	query		string	false	"Filter by account ID"
//	@Param			category	query		string	false	"Filter by category ID"
//	@Param			direction	query		string	false	"Filter by direction"	Enums(inflow, outflow)
//	@Param			from		query		string	false	"Transactions on and after this date, YYYY-MM-DD"
//	@Param			to			query		string	false	"Transactions on and before this date, YYYY-MM-DD"
//	@Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to 50, capped at 200"
//	@Param			offset		query		int		false	"Number of transactions to skip"
//	@Router			/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var filter TransactionQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		abort(c, err)
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Scopes(models.OwnedBy(p.ID)).
		Where(&where, queryFields...).
		Order("transaction_date DESC, created_at DESC, id DESC").
		Limit(filter.limit()).
		Offset(filter.Offset)

	if filter.From != "" {
		from, err := types.ParseDate(filter.From)
		if err != nil {
			abort(c, httputil.FieldErrors{"from": err.Error()})
			return
		}
		q = q.Where("transaction_date >= ?", from)
	}

	if filter.To != "" {
		to, err := types.ParseDate(filter.To)
		if err != nil {
			abort(c, httputil.FieldErrors{"to": err.Error()})
			return
		}
		q = q.Where("transaction_date <= ?", to)
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction of the authenticated user
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.Transaction
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, err := findResource[models.Transaction](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction updates a transaction
//
//	@Summary		Update transaction
//	@Description	Updates a transaction. Only values to be updated need to be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{object}	models.Transaction
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Router			/transactions/{id} [patch]
//	@Router			/transactions/{id} [put]
//	@Router			/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	transaction, err := findResource[models.Transaction](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	var data TransactionEditable
	fields, err := updateFields(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.Model(&transaction).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		abort(c, err)
		return
	}

	transaction, err = findResource[models.Transaction](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	deleteResource[models.Transaction](co, c)
}

// GetTransactionSummary returns income and expense per period
//
//	@Summary		Transaction summary
//	@Description	Returns income and expense for the 12 most recent weeks, months or years with transactions, newest first.
//	@Description	Weeks are identified by their Monday.
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{array}		models.PeriodSummary
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			range	query		string	false	"Length of the periods"	Enums(week, month, year)	default(month)
//	@Router			/transactions/summary [get]
func (co Controller) GetTransactionSummary(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var query TransactionSummaryQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abort(c, err)
		return
	}

	r := query.Range
	if r == "" {
		r = "month"
	}

	summary, err := models.TransactionSummary(co.DB, p.ID, r)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
