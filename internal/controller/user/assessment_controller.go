package user

import (
	"net/http"
	"strconv"

	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/controller"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AssessmentController struct {
	testService    service.TestService
	attemptService service.AttemptService
}

func NewAssessmentController(testService service.TestService, attemptService service.AttemptService) *AssessmentController {
	return &AssessmentController{
		testService:    testService,
		attemptService: attemptService,
	}
}

// ListTests godoc
// @Summary List all available tests
// @Tags Tests & Attempts
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *AssessmentController) ListTests(ctx *gin.Context) {
	tests, err := c.testService.ListTests(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary Get details of a specific test
// @Description Full test details, including questions with answer keys stripped.
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *AssessmentController) GetTest(ctx *gin.Context) {
	testID, err := pathID(ctx, "test_id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	detail, err := c.testService.GetTest(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// StartPractice godoc
// @Summary Draw a random practice question set
// @Description Returns a shuffled subset of catalog questions matching the filters. Nothing is persisted.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Param query body dto.PracticeQueryDTO true "Filters (at least one) and result limit"
// @Success 200 {object} dto.PracticeSessionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /practice/questions [post]
func (c *AssessmentController) StartPractice(ctx *gin.Context) {
	if _, err := controller.CurrentUserID(ctx); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var query dto.PracticeQueryDTO
	if err := ctx.ShouldBindJSON(&query); err != nil {
		log.Warn().Err(err).Msg("StartPractice: failed to bind JSON")
		controller.RespondError(ctx, apperror.Validation("invalid request body"))
		return
	}
	session, err := c.attemptService.StartPractice(ctx.Request.Context(), query)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// StartAttempt godoc
// @Summary Start a formal test attempt
// @Description Creates an attempt with a shuffled question snapshot and returns the sanitized question list.
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.AttemptStartDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id}/attempts [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	userID, err := controller.CurrentUserID(ctx)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	testID, err := pathID(ctx, "test_id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	started, err := c.attemptService.StartFormal(ctx.Request.Context(), userID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, started)
}

// SubmitAttempt godoc
// @Summary Submit answers for an open attempt
// @Description Grades every snapshot question, persists the answer records, and finalizes the attempt exactly once.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param submission body dto.AttemptSubmitDTO true "Submitted answers and time spent"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	userID, err := controller.CurrentUserID(ctx)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	attemptID, err := pathID(ctx, "attempt_id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		controller.RespondError(ctx, apperror.Validation("invalid request body"))
		return
	}
	result, err := c.attemptService.Submit(ctx.Request.Context(), userID, attemptID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttempt godoc
// @Summary Get a specific attempt with per-question results
// @Tags Tests & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *AssessmentController) GetAttempt(ctx *gin.Context) {
	userID, err := controller.CurrentUserID(ctx)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	attemptID, err := pathID(ctx, "attempt_id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	detail, err := c.attemptService.GetAttemptDetail(ctx.Request.Context(), userID, attemptID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListMyAttempts godoc
// @Summary List the caller's attempts for a test
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests/{test_id}/my-attempts [get]
func (c *AssessmentController) ListMyAttempts(ctx *gin.Context) {
	userID, err := controller.CurrentUserID(ctx)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	testID, err := pathID(ctx, "test_id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	summaries, err := c.attemptService.ListAttempts(ctx.Request.Context(), userID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid " + name + " format")
	}
	return uint(val), nil
}
