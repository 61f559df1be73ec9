package controller

import (
	"time"

	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollRequest struct {
	CourseSlug string `json:"courseSlug" binding:"required"`
}

// Enroll godoc
// @Summary Enroll in a published course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EnrollRequest true "Course to enroll in"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /enrollments [post]
func (ctl *EnrollmentController) Enroll(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	enrollment, err := ctl.EnrollmentService.Enroll(claims.UserID, req.CourseSlug, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, enrollment)
}

// List godoc
// @Summary List the caller's enrollments with live progress
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /enrollments [get]
func (ctl *EnrollmentController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	enrollments, err := ctl.EnrollmentService.ListForStudent(claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, enrollments)
}

// Get godoc
// @Summary Get one enrollment with per-lesson progress
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /enrollments/{id} [get]
func (ctl *EnrollmentController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	enrollmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctl.EnrollmentService.GetDetail(enrollmentID, claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, detail)
}

// CourseProgress godoc
// @Summary Get the caller's live progress in a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /courses/{slug}/progress [get]
func (ctl *EnrollmentController) CourseProgress(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	view, err := ctl.EnrollmentService.CourseProgress(claims.UserID, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, view)
}

// Complete godoc
// @Summary Mark an enrollment as completed
// @Description Explicit action; progress reports 100 afterwards regardless of lesson state.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} util.Response
// @Router /enrollments/{id}/complete [post]
func (ctl *EnrollmentController) Complete(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	enrollmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := ctl.EnrollmentService.Complete(enrollmentID, claims, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, enrollment)
}
