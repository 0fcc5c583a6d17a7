package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

// AccessDenied is the only body a failed authentication ever produces.
var AccessDenied = gin.H{"message": "Access Denied"}

// checks “Authorization: Basic <base64(email:password)>”, loads the user by
// email, verifies the bcrypt hash and sets “currentUser” in context.
// The failure reason is logged, never returned.
func BasicAuth(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, reason := authenticate(c, store)
		if reason != "" {
			log.Warn().Str("path", c.Request.URL.Path).Msg(reason)
			c.AbortWithStatusJSON(http.StatusUnauthorized, AccessDenied)
			return
		}

		log.Debug().Msgf("Authentication successful for user: %s", user.EmailAddress)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func authenticate(c *gin.Context, store db.Store) (*model.User, string) {
	name, pass, ok := c.Request.BasicAuth()
	if !ok {
		return nil, "Auth header not found"
	}

	user, err := store.GetUserByEmail(c.Request.Context(), name)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Error().Err(err).Msg("user lookup failed during authentication")
		}
		return nil, fmt.Sprintf("User not found for emailAddress: %s", name)
	}

	if !CheckPassword(user.Password, pass) {
		return nil, fmt.Sprintf("Authentication failure for user: %s", user.EmailAddress)
	}
	return user, ""
}
