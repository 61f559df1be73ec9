package controller

import (
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=student instructor"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	role := model.Student
	if req.Role == string(model.Instructor) {
		role = model.Instructor
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if err := ctl.AuthService.Register(user); err != nil {
		respondServiceError(c, err)
		return
	}

	user.Password = ""
	util.Created(c, user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user.Password = ""
	util.Success(c, LoginResponse{Token: token, User: user})
}
