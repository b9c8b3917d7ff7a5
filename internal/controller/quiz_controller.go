package controller

import (
	"errors"
	"strconv"

	"cleanleb_backend/internal/service"
	"cleanleb_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// List godoc
// @Summary List active quizzes
// @Tags education
// @Produce json
// @Param category query string false "category filter"
// @Param difficulty query string false "difficulty filter"
// @Param limit query int false "max results (default 10)"
// @Success 200 {object} util.Response
// @Router /education/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	quizzes, err := c.Service.ListQuizzes(ctx.Query("category"), ctx.Query("difficulty"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Get a quiz with its questions, answer key withheld
// @Tags education
// @Produce json
// @Param id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /education/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	quiz, err := c.Service.GetQuiz(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Create godoc
// @Summary Create a quiz (admin only)
// @Tags education
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizRequest true "quiz definition"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /education/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(user.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{
		"id":          quiz.ID,
		"title":       quiz.Title,
		"totalPoints": quiz.TotalPoints,
	})
}

// Submit godoc
// @Summary Submit quiz answers for grading
// @Description One attempt per user per quiz. Percentage = round(100 * correct / questions).
// @Tags education
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "quiz id"
// @Param body body service.SubmitQuizRequest true "answers, one per question"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "answer count mismatch"
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "already completed"
// @Router /education/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	result, err := c.Service.Submit(id, user.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerCount), errors.Is(err, util.ErrInvalidOption):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "you have already completed this quiz")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary The caller's past quiz submissions
// @Tags education
// @Produce json
// @Security BearerAuth
// @Param limit query int false "max results (default 10)"
// @Success 200 {object} util.Response
// @Router /education/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	subs, err := c.Service.History(user.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}
