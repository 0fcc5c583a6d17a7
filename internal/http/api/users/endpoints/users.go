package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api/users/packets"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

const msgDuplicateEmail = "The given email is already paired to a user."

type AccountManager struct {
	store db.Store
}

func accountManagementController(store db.Store) *AccountManager {
	return &AccountManager{store: store}
}

// UserPublicModule mounts registration, which needs no credentials.
func UserPublicModule(store db.Store) api.Module {
	ctl := accountManagementController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/users", ctl.createUser)
	})
}

// UserSessionModule mounts the endpoints that act on the authenticated caller.
func UserSessionModule(store db.Store) api.Module {
	ctl := accountManagementController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/users", ctl.getCurrentUser)
	})
}

// GET /api/users
func (a *AccountManager) getCurrentUser(ctx *gin.Context, user *model.User) (any, *api.Error) {
	return []packets.UserResponse{packets.NewUserResponse(user)}, nil
}

// POST /api/users
func (a *AccountManager) createUser(ctx *gin.Context) (any, *api.Error) {
	var request packets.CreateUserRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, api.InternalError(err, "could not hash password")
	}

	reqCtx := ctx.Request.Context()
	exists, err := a.store.EmailExists(reqCtx, request.EmailAddress)
	if err != nil {
		return nil, api.InternalError(err, "could not check email uniqueness")
	}
	if exists {
		log.Info().Str("email", request.EmailAddress).Msg("registration refused, email already registered")
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgDuplicateEmail}
	}

	id, err := a.store.CreateUser(reqCtx, &model.User{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		EmailAddress: request.EmailAddress,
		Password:     hashed,
	})
	if errors.Is(err, db.ErrDuplicateEmail) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgDuplicateEmail}
	}
	if err != nil {
		return nil, api.InternalError(err, "could not create user")
	}

	log.Info().Int("user_id", id).Msg("user registered")
	return api.Status{Code: http.StatusCreated, Location: "/"}, nil
}
