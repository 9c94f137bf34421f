package controller

import (
	"strconv"

	"github.com/Harish8848/bhasaguru-sub001/internal/apperror"
	"github.com/Harish8848/bhasaguru-sub001/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RespondError writes the stable error envelope for err. Internal failures
// are logged with full detail but surfaced opaquely.
func RespondError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed with internal error")
	}
	ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{
		Code:    kind.Code(),
		Message: apperror.PublicMessage(err),
	})
}

// CurrentUserID resolves the authenticated user id set by the identity
// collaborator's edge proxy. This core never authenticates directly.
func CurrentUserID(ctx *gin.Context) (uint, error) {
	header := ctx.GetHeader("X-User-ID")
	if header == "" {
		return 0, apperror.AuthenticationRequired()
	}
	val, err := strconv.ParseUint(header, 10, 32)
	if err != nil {
		return 0, apperror.AuthenticationRequired()
	}
	return uint(val), nil
}
