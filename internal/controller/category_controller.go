package controller

import (
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CatalogService *service.CatalogService
}

func NewCategoryController(catalogService *service.CatalogService) *CategoryController {
	return &CategoryController{CatalogService: catalogService}
}

// List godoc
// @Summary List categories with course counts
// @Tags categories
// @Produce json
// @Success 200 {object} util.Response
// @Router /categories [get]
func (ctl *CategoryController) List(c *gin.Context) {
	categories, err := ctl.CatalogService.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, categories)
}

// Courses godoc
// @Summary List published courses in a category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /categories/{slug}/courses [get]
func (ctl *CategoryController) Courses(c *gin.Context) {
	courses, err := ctl.CatalogService.CoursesInCategory(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	util.Success(c, courses)
}
