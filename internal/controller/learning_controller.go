package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// LearningController serves the course viewer and per-lesson progress writes.
type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// @Summary Course viewer content for an enrolled student
// @Tags learning
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/learn/{id} [get]
func (c *LearningController) GetCourseViewer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	content, err := c.LearningService.GetCourseViewer(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, content)
}

// @Summary Mark a lesson as completed
// @Tags learning
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *LearningController) MarkLessonComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.LearningService.MarkLessonComplete(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

type WatchTimeRequest struct {
	Seconds int `json:"seconds" binding:"required,min=1"`
}

// @Summary Record watch time against a lesson
// @Tags learning
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Param body body WatchTimeRequest true "seconds watched"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/watch [post]
func (c *LearningController) RecordWatchTime(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req WatchTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.LearningService.RecordWatchTime(claims.UserID, ctx.Param("id"), req.Seconds); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"recorded": true})
}
