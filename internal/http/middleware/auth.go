package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

// gin context key holding the authenticated *model.User.
const CurrentUserKey = "currentUser"

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// uses bcrypt to hash a plaintext password. Bytes past the 72nd are ignored.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(passwordBytes(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plain))
	return err == nil
}

func passwordBytes(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// retrieves *model.User from Gin context (after BasicAuth has run).
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}
