package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}
	{
		r.OPTIONS("/:id", co.OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.PUT("/:id", co.UpdateAccount)
		r.PATCH("/:id", co.UpdateAccount)
		r.DELETE("/:id", co.DeleteAccount)
	}
}

// OptionsAccountDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/accounts/{id} [options]
func (co Controller) OptionsAccountDetail(c *gin.Context) {
	optionsDetail[models.Account](co, c, models.OwnedBy)
}

// CreateAccount creates an account
//
//	@Summary		Create account
//	@Description	Creates a new account for the authenticated user
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201		{object}	models.Account
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			account	body		AccountCreate	true	"Account"
//	@Router			/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data AccountCreate
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, data.UserID); err != nil {
		abort(c, err)
		return
	}

	account := data.model(p.ID)
	err = co.DB.Create(&account).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccounts returns the accounts of the user
//
//	@Summary		List accounts
//	@Description	Returns the accounts of the authenticated user, ordered by name
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{array}		models.Account
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			type		query		string	false	"Filter by type"
//	@Param			institution	query		string	false	"Filter by institution"
//	@Param			search		query		string	false	"Search for this text in account name and institution"
//	@Param			limit		query		int		false	"Maximum number of accounts to return. Defaults to 50, capped at 200"
//	@Param			offset		query		int		false	"Number of accounts to skip"
//	@Router			/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var filter AccountQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		abort(c, err)
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Scopes(models.OwnedBy(p.ID)).
		Where(&where, queryFields...).
		Order("account_name ASC, id ASC").
		Limit(filter.limit()).
		Offset(filter.Offset)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("account_name LIKE ? OR institution LIKE ?", pattern, pattern)
	}

	var accounts []models.Account
	err = q.Find(&accounts).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// GetAccount returns a specific account
//
//	@Summary		Get account
//	@Description	Returns a specific account of the authenticated user
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.Account
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	account, err := findResource[models.Account](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAccount updates an account
//
//	@Summary		Update account
//	@Description	Updates an account. Only values to be updated need to be specified.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{object}	models.Account
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			account	body		AccountEditable	true	"Account"
//	@Router			/accounts/{id} [patch]
//	@Router			/accounts/{id} [put]
//	@Router			/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	account, err := findResource[models.Account](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	var data AccountEditable
	fields, err := updateFields(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	update, err := data.model()
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.Model(&account).Select("", fields...).Updates(update).Error
	if err != nil {
		abort(c, err)
		return
	}

	account, err = findResource[models.Account](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// DeleteAccount deletes an account
//
//	@Summary		Delete account
//	@Description	Deletes an account. Transactions of the account are kept without an account.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/accounts/{id} [delete]
func (co Controller) DeleteAccount(c *gin.Context) {
	deleteResource[models.Account](co, c)
}
