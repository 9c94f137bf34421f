package admin

import (
	"net/http"

	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/controller"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/Harish8848/bhasaguru-sub001/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Create a new test with its questions
// @Description Persists a test and its question set, then invalidates the test-scoped cache entries.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test and questions"
// @Success 201 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: failed to bind JSON")
		controller.RespondError(ctx, apperror.Validation("invalid request body"))
		return
	}

	created, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
