package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// @Summary Shareable certificate view
// @Tags certificates
// @Produce json
// @Param courseId path string true "course id"
// @Param userId path string true "user id"
// @Success 200 {object} util.Response
// @Router /api/certificate/{courseId}/{userId} [get]
func (c *CertificateController) GetCertificate(ctx *gin.Context) {
	view, err := c.CertificateService.GetCertificateView(ctx.Param("courseId"), ctx.Param("userId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, view)
}
