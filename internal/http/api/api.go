package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

// Error is returned by endpoints instead of writing the response themselves.
// A non-empty Errors list is rendered as {"errors": [...]}, otherwise {"error": Message}.
type Error struct {
	Code    int
	Message string
	Errors  []string
}

// Status is a body-less endpoint result. Location is sent as a header when set.
type Status struct {
	Code     int
	Location string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *Error)
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// InternalError logs err and hides it behind the generic 500 body.
func InternalError(err error, msg string) *Error {
	log.Error().Err(err).Msg(msg)
	return &Error{Code: http.StatusInternalServerError, Message: middleware.InternalErrorMessage}
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, middleware.AccessDenied)
			return
		}

		result, err := h(ctx, user)
		write(ctx, result, err)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, err := h(ctx)
		write(ctx, result, err)
	}
}

func write(ctx *gin.Context, result any, err *Error) {
	if err != nil {
		if len(err.Errors) > 0 {
			ctx.JSON(err.Code, gin.H{"errors": err.Errors})
			return
		}
		ctx.JSON(err.Code, gin.H{"error": err.Message})
		return
	}

	if status, ok := result.(Status); ok {
		if status.Location != "" {
			ctx.Header("Location", status.Location)
		}
		ctx.Status(status.Code)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
