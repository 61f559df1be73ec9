package controller

import (
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CatalogService *service.CatalogService
}

func NewCourseController(catalogService *service.CatalogService) *CourseController {
	return &CourseController{CatalogService: catalogService}
}

// List godoc
// @Summary List courses
// @Description Published courses for everyone; instructors also see their own drafts, admins see everything.
// @Tags courses
// @Produce json
// @Param category query string false "Category slug"
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Param featured query bool false "Featured courses only"
// @Param search query string false "Search in title, description and tags"
// @Success 200 {object} util.Response
// @Router /courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	filter := repository.CourseFilter{
		CategorySlug: c.Query("category"),
		Difficulty:   c.Query("difficulty"),
		FeaturedOnly: c.Query("featured") == "true",
		Search:       c.Query("search"),
	}
	if claims := util.GetUserFromContext(c); claims != nil {
		filter.ViewerID = claims.UserID
		filter.IsStaff = claims.IsStaff()
	}

	courses, err := ctl.CatalogService.ListCourses(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, courses)
}

// Get godoc
// @Summary Get a course by slug with modules and lessons
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{slug} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	course, err := ctl.CatalogService.GetCourse(c.Param("slug"), util.GetUserFromContext(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, course)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CourseRequest true "Course payload"
// @Success 201 {object} util.Response
// @Router /courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CatalogService.CreateCourse(claims.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body service.CourseRequest true "Course payload"
// @Success 200 {object} util.Response
// @Router /courses/{slug} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CatalogService.UpdateCourse(c.Param("slug"), claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} util.Response
// @Router /courses/{slug} [delete]
func (ctl *CourseController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if err := ctl.CatalogService.DeleteCourse(c.Param("slug"), claims); err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// UploadThumbnail godoc
// @Summary Upload a course thumbnail
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 200 {object} util.Response
// @Router /courses/{slug}/thumbnail [post]
func (ctl *CourseController) UploadThumbnail(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	file, err := c.FormFile("thumbnail")
	if err != nil {
		util.BadRequest(c, "thumbnail file is required")
		return
	}

	course, err := ctl.CatalogService.UploadThumbnail(c.Param("slug"), claims, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, course)
}

// CreateModule godoc
// @Summary Add a module to a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param request body service.ModuleRequest true "Module payload"
// @Success 201 {object} util.Response
// @Router /courses/{slug}/modules [post]
func (ctl *CourseController) CreateModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	m, err := ctl.CatalogService.CreateModule(c.Param("slug"), claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, m)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param request body service.ModuleRequest true "Module payload"
// @Success 200 {object} util.Response
// @Router /modules/{id} [put]
func (ctl *CourseController) UpdateModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	m, err := ctl.CatalogService.UpdateModule(moduleID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, m)
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response
// @Router /modules/{id} [delete]
func (ctl *CourseController) DeleteModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.CatalogService.DeleteModule(moduleID, claims); err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// CreateLesson godoc
// @Summary Add a lesson to a module
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID"
// @Param request body service.LessonRequest true "Lesson payload"
// @Success 201 {object} util.Response
// @Router /modules/{id}/lessons [post]
func (ctl *CourseController) CreateLesson(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	moduleID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.CatalogService.CreateLesson(moduleID, claims, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Created(c, lesson)
}
