package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/service"
	"cleanleb_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxReportImages = 5

type ReportController struct {
	Service *service.ReportService
	Storage *service.StorageService
}

func NewReportController(svc *service.ReportService, storage *service.StorageService) *ReportController {
	return &ReportController{Service: svc, Storage: storage}
}

// List godoc
// @Summary List reports
// @Tags reports
// @Produce json
// @Param category query string false "category filter"
// @Param status query string false "status filter"
// @Param city query string false "city substring filter"
// @Param reporter query int false "reporter user id"
// @Param page query int false "page (default 1)"
// @Param limit query int false "page size (default 10)"
// @Success 200 {object} util.Response
// @Router /reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := repository.ReportFilter{
		Category:   ctx.Query("category"),
		Status:     ctx.Query("status"),
		City:       ctx.Query("city"),
		ReporterID: util.MustParseUint(ctx.Query("reporter")),
	}

	result, err := c.Service.List(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Get godoc
// @Summary Get one report
// @Tags reports
// @Produce json
// @Param id path int true "report id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /reports/{id} [get]
func (c *ReportController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	report, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}

// Create godoc
// @Summary Submit a waste report
// @Description Multipart form with report fields and up to 5 images. Awards 10 points.
// @Tags reports
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /reports [post]
func (c *ReportController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateReportRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !model.ValidCategory(req.Category) {
		util.BadRequest(ctx, "invalid category")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		util.BadRequest(ctx, "coordinates out of range")
		return
	}

	var images []model.ReportImage
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxReportImages {
			util.BadRequest(ctx, fmt.Sprintf("at most %d images allowed", maxReportImages))
			return
		}
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				util.LogInternalError(ctx, err)
				return
			}
			mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
			if err != nil {
				src.Close()
				util.BadRequest(ctx, err.Error())
				return
			}
			src.Close()

			// Reopen for the upload; the sniff consumed the head.
			src, err = file.Open()
			if err != nil {
				util.LogInternalError(ctx, err)
				return
			}
			key := fmt.Sprintf("reports/%s/%s%s",
				time.Now().Format("2006/01"),
				uuid.New().String(),
				filepath.Ext(file.Filename))
			url, err := c.Storage.Upload(ctx.Request.Context(), key, src, file.Size, mimeType)
			src.Close()
			if err != nil {
				util.LogInternalError(ctx, err)
				return
			}
			images = append(images, model.ReportImage{URL: url, ObjectKey: key})
		}
	}

	report, err := c.Service.Create(user.UserID, req, images)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, report)
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}

// Vote godoc
// @Summary Toggle an up/down vote on a report
// @Description Voting the same direction again removes the vote; the opposite direction switches it.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "report id"
// @Param body body VoteRequest true "vote direction: up or down"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "unknown vote type"
// @Failure 404 {object} util.Response
// @Router /reports/{id}/vote [put]
func (c *ReportController) Vote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	counts, err := c.Service.Vote(id, user.UserID, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidVoteType):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrReportNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, counts)
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary Update a report's status (staff only)
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "report id"
// @Param body body StatusUpdateRequest true "new status"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /reports/{id}/status [put]
func (c *ReportController) UpdateStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	report, err := c.Service.UpdateStatus(id, user.UserID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidStatus):
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

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddComment godoc
// @Summary Comment on a report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "report id"
// @Param body body CommentRequest true "comment text"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /reports/{id}/comments [post]
func (c *ReportController) AddComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	comment, err := c.Service.AddComment(id, user.UserID, req.Text)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, comment)
}
