// Package identity authenticates requests with bearer tokens issued elsewhere.
package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/mindful-labyrinth/infrastruture/token"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	// ContextPlayerID is the key used to store the authenticated player ID.
	ContextPlayerID = "playerID"
)

// Authoriz rejects requests without a valid bearer token and stores the
// token claims and the player ID in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		playerID, err := token.UserID(claims)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Set(ContextPlayerID, playerID)
		c.Next()
	}
}

// PlayerID returns the player authenticated by Authoriz.
func PlayerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextPlayerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
