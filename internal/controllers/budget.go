package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PUT("/:id", co.UpdateBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// withSpent adds the spent amount and the overrun flag to budgets.
func (co Controller) withSpent(userID uuid.UUID, budgets ...models.Budget) ([]Budget, error) {
	spent, err := models.SpentForBudgets(co.DB, userID, budgets)
	if err != nil {
		return nil, err
	}

	result := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		s := spent[b.ID]
		result = append(result, Budget{
			Budget:  b,
			Spent:   s,
			Overrun: s.GreaterThan(b.LimitAmount),
		})
	}

	return result, nil
}

// budgetResponse writes a single budget with its spent amount.
func (co Controller) budgetResponse(c *gin.Context, code int, budget models.Budget) {
	budgets, err := co.withSpent(budget.UserID, budget)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(code, budgets[0])
}

// OptionsBudgetDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	optionsDetail[models.Budget](co, c, models.OwnedBy)
}

// CreateBudget creates a budget
//
//	@Summary		Create budget
//	@Description	Creates a budget for a category and month. There can only be one budget per category and month.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201		{object}	Budget
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			budget	body		BudgetCreate	true	"Budget"
//	@Router			/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data BudgetCreate
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, data.UserID); err != nil {
		abort(c, err)
		return
	}

	budget := data.model(p.ID)
	err = co.DB.Create(&budget).Error
	if err != nil {
		abort(c, err)
		return
	}

	co.budgetResponse(c, http.StatusCreated, budget)
}

// GetBudgets returns the budgets of the user
//
//	@Summary		List budgets
//	@Description	Returns the budgets of the authenticated user with the amount spent, newest month first
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{array}		Budget
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			month		query		string	false	"Filter by month, YYYY-MM or YYYY-MM-DD"
//	@Param			category	query		string	false	"Filter by category ID"
//	@Param			limit		query		int		false	"Maximum number of budgets to return. Defaults to 50, capped at 200"
//	@Param			offset		query		int		false	"Number of budgets to skip"
//	@Router			/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var filter BudgetQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		abort(c, err)
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	q := co.DB.
		Scopes(models.OwnedBy(p.ID)).
		Where(&where, queryFields...).
		Order("month DESC, created_at DESC").
		Limit(filter.limit()).
		Offset(filter.Offset)

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			abort(c, httputil.FieldErrors{"month": err.Error()})
			return
		}
		q = q.Where("month = ?", month)
	}

	var budgets []models.Budget
	err = q.Find(&budgets).Error
	if err != nil {
		abort(c, err)
		return
	}

	result, err := co.withSpent(p.ID, budgets...)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget returns a specific budget
//
//	@Summary		Get budget
//	@Description	Returns a specific budget with the amount spent
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Budget
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	budget, err := findResource[models.Budget](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	co.budgetResponse(c, http.StatusOK, budget)
}

// UpdateBudget updates a budget
//
//	@Summary		Update budget
//	@Description	Updates a budget. Only values to be updated need to be specified.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{object}	Budget
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/budgets/{id} [patch]
//	@Router			/budgets/{id} [put]
//	@Router			/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	budget, err := findResource[models.Budget](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	var data BudgetEditable
	fields, err := updateFields(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.Model(&budget).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		abort(c, err)
		return
	}

	budget, err = findResource[models.Budget](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	co.budgetResponse(c, http.StatusOK, budget)
}

// DeleteBudget deletes a budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget
//	@Tags			Budgets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	deleteResource[models.Budget](co, c)
}
