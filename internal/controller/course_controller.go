package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController is the instructor-facing course management surface.
type CourseController struct {
	CourseService  *service.CourseService
	ContentService *service.ContentService
}

func NewCourseController(courseService *service.CourseService, contentService *service.ContentService) *CourseController {
	return &CourseController{CourseService: courseService, ContentService: contentService}
}

// @Summary Create a draft course
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseInput true "course form"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary List own courses with stats
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses [get]
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, stats, err := c.CourseService.GetInstructorCourses(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"courses": courses,
		"stats":   stats,
	})
}

// @Summary Load a course for editing
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, lessons, err := c.CourseService.GetCourseForEdit(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"course":  course,
		"lessons": lessons,
	})
}

// @Summary Save course edits and lesson batch
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body service.CourseInput true "course form"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Param("id"), claims.UserID, claims.Role, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// @Summary Toggle publish state
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body PublishRequest true "publish flag"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/publish [patch]
func (c *CourseController) SetPublished(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.SetPublished(ctx.Param("id"), claims.UserID, claims.Role, req.Published); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"published": req.Published})
}

// @Summary Delete a course
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary Upload a course thumbnail
// @Tags instructor
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/instructor/upload/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	url, err := c.ContentService.UploadImage(ctx, file, "thumbnails")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// @Summary Upload a lesson video
// @Tags instructor
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "video file"
// @Success 200 {object} util.Response
// @Router /api/instructor/upload/video [post]
func (c *CourseController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	result, err := c.ContentService.UploadLessonVideo(ctx, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
