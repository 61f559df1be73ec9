package controller

import (
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /users/me [get]
func (ctl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	user, err := ctl.UserService.GetProfile(claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user.Password = ""
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} util.Response
// @Router /users/me [put]
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user.Password = ""
	util.Success(c, user)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} util.Response
// @Router /users/me/avatar [post]
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "avatar file is required")
		return
	}

	user, err := ctl.UserService.UploadAvatar(claims.UserID, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user.Password = ""
	util.Success(c, user)
}
