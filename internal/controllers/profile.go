package controllers

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type ProfileEditable struct {
	Name                    string        `json:"name" binding:"required,notblank,max=255" example:"Jane Doe"` // Name of the user
	NotificationPreferences types.JSONMap `json:"notificationPreferences" swaggertype:"object"`                // Replaces the stored preferences when set
}

func (co Controller) RegisterProfileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPut)
	r.GET("", co.GetProfile)
	r.PUT("", co.UpdateProfile)
}

// GetProfile returns the authenticated user
//
//	@Summary		Get profile
//	@Description	Returns the profile of the authenticated user
//	@Tags			Profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Router			/profile [get]
func (co Controller) GetProfile(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var user models.User
	err = co.DB.First(&user, "id = ?", p.ID).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates name and notification preferences
//
//	@Summary		Update profile
//	@Description	Updates the name of the authenticated user and, if sent, the notification preferences
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200		{object}	models.User
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		404		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			profile	body		ProfileEditable	true	"Profile"
//	@Router			/profile [put]
func (co Controller) UpdateProfile(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		abort(c, err)
		return
	}

	var data ProfileEditable
	if _, err := httputil.GetBodyFields(c, &data); err != nil {
		abort(c, err)
		return
	}

	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	var user models.User
	err = co.DB.First(&user, "id = ?", p.ID).Error
	if err != nil {
		abort(c, err)
		return
	}

	fields := []any{"Name"}
	update := models.User{Name: strings.TrimSpace(data.Name)}
	if data.NotificationPreferences != nil {
		fields = append(fields, "NotificationPreferences")
		update.NotificationPreferences = data.NotificationPreferences
	}

	err = co.DB.Model(&user).Select("", fields...).Updates(update).Error
	if err != nil {
		abort(c, err)
		return
	}

	err = co.DB.First(&user, "id = ?", p.ID).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
