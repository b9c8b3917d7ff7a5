package controller

import (
	"errors"

	"cleanleb_backend/internal/service"
	"cleanleb_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	ReportService *service.ReportService
	StatsService  *service.StatsService
}

func NewAdminController(reportService *service.ReportService, statsService *service.StatsService) *AdminController {
	return &AdminController{
		ReportService: reportService,
		StatsService:  statsService,
	}
}

// UpdateReport godoc
// @Summary Patch a report's status, priority, or assignee (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "report id"
// @Param body body service.AdminReportUpdate true "fields to patch"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/reports/{id} [put]
func (c *AdminController) UpdateReport(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AdminReportUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	report, err := c.ReportService.AdminUpdate(id, user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidStatus), errors.Is(err, util.ErrInvalidPriority), errors.Is(err, util.ErrInvalidAssignee):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrReportNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}

// Stats godoc
// @Summary Platform totals for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.StatsService.GetStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
