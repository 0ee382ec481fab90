package controllers

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PUT("/:id", co.UpdateCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// OptionsCategoryDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	optionsDetail[models.Category](co, c, models.VisibleCategories)
}

// CreateCategory creates a category
//
//	@Summary		Create category
//	@Description	Creates a new category for the authenticated user
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201			{object}	models.Category
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			category	body		CategoryCreate	true	"Category"
//	@Router			/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data CategoryCreate
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, data.UserID); err != nil {
		abort(c, err)
		return
	}

	category := data.model(p.ID)
	err = co.DB.Create(&category).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories returns the categories visible to the user
//
//	@Summary		List categories
//	@Description	Returns the categories of the authenticated user and, unless disabled, the global default categories
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200					{array}		models.Category
//	@Failure		400					{object}	httpError
//	@Failure		401					{object}	httpError
//	@Failure		500					{object}	httpError
//	@Param			type				query		string	false	"Filter by type"	Enums(income, expense)
//	@Param			user_id				query		string	false	"Must be the ID of the authenticated user"
//	@Param			include_defaults	query		bool	false	"Include the global default categories"	default(true)
//	@Param			limit				query		int		false	"Maximum number of categories to return. Defaults to 50, capped at 200"
//	@Param			offset				query		int		false	"Number of categories to skip"
//	@Router			/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var filter CategoryQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		abort(c, err)
		return
	}

	if err := checkOwner(p, filter.UserID.Ptr()); err != nil {
		abort(c, err)
		return
	}

	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	where := filter.model()

	visible := models.OwnedBy
	if filter.includeDefaults() {
		visible = models.VisibleCategories
	}

	var categories []models.Category
	err = co.DB.
		Scopes(visible(p.ID)).
		Where(&where, queryFields...).
		Order("name ASC, id ASC").
		Limit(filter.limit()).
		Offset(filter.Offset).
		Find(&categories).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory returns a specific category
//
//	@Summary		Get category
//	@Description	Returns a category of the authenticated user or a global default category
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.Category
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	category, err := findResource[models.Category](co, c, models.VisibleCategories)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory updates a category
//
//	@Summary		Update category
//	@Description	Updates a category of the authenticated user. Global default categories cannot be updated.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200			{object}	models.Category
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		404			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			id			path		string				true	"ID formatted as string"
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/categories/{id} [patch]
//	@Router			/categories/{id} [put]
//	@Router			/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	category, err := findResource[models.Category](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	var data CategoryEditable
	fields, err := updateFields(c, &data)
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.Model(&category).Select("", fields...).Updates(data.model()).Error
	if err != nil {
		abort(c, err)
		return
	}

	category, err = findResource[models.Category](co, c, models.OwnedBy)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category
//
//	@Summary		Delete category
//	@Description	Deletes a category of the authenticated user. Transactions keep existing without a category,
//	@Description	budgets for the category are deleted. Global default categories are never deleted.
//	@Tags			Categories
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	DeleteResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	deleteResource[models.Category](co, c)
}
