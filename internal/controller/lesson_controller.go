package controller

import (
	"time"

	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	CatalogService *service.CatalogService
	LessonService  *service.LessonService
}

func NewLessonController(catalogService *service.CatalogService, lessonService *service.LessonService) *LessonController {
	return &LessonController{
		CatalogService: catalogService,
		LessonService:  lessonService,
	}
}

// Get godoc
// @Summary Get a lesson with its quiz
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /lessons/{id} [get]
func (ctl *LessonController) Get(c *gin.Context) {
	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	lesson, err := ctl.CatalogService.GetLesson(lessonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// Update godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body service.LessonRequest true "Lesson payload"
// @Success 200 {object} util.Response
// @Router /lessons/{id} [put]
func (ctl *LessonController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.CatalogService.UpdateLesson(lessonID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// Delete godoc
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /lessons/{id} [delete]
func (ctl *LessonController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.CatalogService.DeleteLesson(lessonID, claims); err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Complete godoc
// @Summary Mark a lesson as completed
// @Description Idempotent; requires enrollment in the owning course.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /lessons/{id}/complete [post]
func (ctl *LessonController) Complete(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	progress, err := ctl.LessonService.MarkComplete(claims.UserID, lessonID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, progress)
}

type TrackTimeRequest struct {
	TimeSpentMinutes int `json:"time_spent_minutes" binding:"required,gte=1"`
}

// TrackTime godoc
// @Summary Record time spent on a lesson
// @Description Minutes accumulate across calls.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body TrackTimeRequest true "Minutes spent"
// @Success 200 {object} util.Response
// @Router /lessons/{id}/track_time [post]
func (ctl *LessonController) TrackTime(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req TrackTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	progress, err := ctl.LessonService.TrackTime(claims.UserID, lessonID, req.TimeSpentMinutes, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, progress)
}

// UploadVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video and fills the lesson duration from the container metadata.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param video formData file true "Video file"
// @Success 200 {object} util.Response
// @Router /lessons/{id}/video [post]
func (ctl *LessonController) UploadVideo(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	lessonID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		util.BadRequest(c, "video file is required")
		return
	}

	lesson, err := ctl.LessonService.UploadVideo(claims, lessonID, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}
