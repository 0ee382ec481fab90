package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}
	{
		r.OPTIONS("/:id", co.OptionsGoalDetail)
		r.GET("/:id", co.GetGoal)
		r.PUT("/:id", co.UpdateGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}
}

// OptionsGoalDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/goals/{id} [options]
func (co Controller) OptionsGoalDetail(c *gin.Context) {
	optionsDetail[models.Goal](co, c, models.OwnedBy)
}

// CreateGoal creates a goal
//
//	@Summary		Create goal
//	@Description	Creates a savings goal
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201		{object}	models.Goal
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			goal	body		GoalCreate	true	"Goal"
//	@Router			/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data GoalCreate
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, data.UserID); err != nil {
		abort(c, err)
		return
	}

	goal := data.model(p.ID)
	err = co.DB.Create(&goal).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// GetGoals returns the goals of the user
//
//	@Summary		List goals
//	@Description	Returns the goals of the authenticated user, newest first
//	@Tags			Goals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{array}		models.Goal
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			limit	query		int	false	"Maximum number of goals to return. Defaults to 50, capped at 200"
//	@Param			offset	query		int	false	"Number of goals to skip"
//	@Router			/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var filter GoalQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		abort(c, err)
		return
	}

	var goals []models.Goal
	err = co.DB.
		Scopes(models.OwnedBy(p.ID)).
		Order("created_at DESC, id DESC").
		Limit(filter.limit()).
		Offset(filter.Offset).
		Find(&goals).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// GetGoal returns a specific goal
//
//	@Summary		Get goal
//	@Description	Returns a specific goal
//	@Tags			Goals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.Goal
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	goal, err := findResource[models.Goal](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoal updates a goal
//
//	@Summary		Update goal
//	@Description	Updates a goal. Only values to be updated need to be specified.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{object}	models.Goal
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			id		path		string			true	"ID formatted as string"
//	@Param			goal	body		GoalEditable	true	"Goal"
//	@Router			/goals/{id} [patch]
//	@Router			/goals/{id} [put]
//	@Router			/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	goal, err := findResource[models.Goal](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	var data GoalEditable
	fields, err := updateFields(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.Model(&goal).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		abort(c, err)
		return
	}

	goal, err = findResource[models.Goal](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal deletes a goal
//
//	@Summary		Delete goal
//	@Description	Deletes a goal
//	@Tags			Goals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	deleteResource[models.Goal](co, c)
}
