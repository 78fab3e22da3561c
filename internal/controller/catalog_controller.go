package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary Browse published courses
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.CatalogService.ListPublished(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary Course detail page
// @Tags catalog
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourseDetail(ctx *gin.Context) {
	detail, err := c.CatalogService.GetCourseDetail(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
