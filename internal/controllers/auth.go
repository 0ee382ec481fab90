package controllers

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery staple"`
	Name     string `json:"name" binding:"required,notblank,max=255" example:"Jane Doe"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

type RegisterResponse struct {
	User models.User `json:"user"`
}

type LoginResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token for the Authorization header
	User  models.User `json:"user"`
}

func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)
	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)
}

// Register creates a new user
//
//	@Summary		Register
//	@Description	Creates a new user. The email address must not be in use yet.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	httpError
//	@Failure		409		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			user	body		RegisterRequest	true	"User"
//	@Router			/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var data RegisterRequest
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		abort(c, err)
		return
	}

	user := models.User{
		Email:        data.Email,
		PasswordHash: hash,
		Name:         data.Name,
	}

	err = co.DB.Create(&user).Error
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{User: user})
}

// Login returns a token for valid credentials
//
//	@Summary		Login
//	@Description	Verifies the credentials and returns a bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	LoginResponse
//	@Failure		400			{object}	httpError
//	@Failure		401			{object}	httpError
//	@Failure		500			{object}	httpError
//	@Param			credentials	body		LoginRequest	true	"Credentials"
//	@Router			/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var data LoginRequest
	if err := httputil.BindData(c, &data); err != nil {
		abort(c, err)
		return
	}

	var user models.User
	err := co.DB.Where("email = ?", models.NormalizeEmail(data.Email)).First(&user).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		abort(c, auth.ErrInvalidCredentials)
		return
	} else if err != nil {
		abort(c, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, data.Password); err != nil {
		abort(c, err)
		return
	}

	token, err := co.Tokens.Issue(auth.Principal{ID: user.ID, Email: user.Email})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}
