package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/grschool/sms_backend/internal/core/domain"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	actorKey     = contextKey("actor")
	loggerCtxKey = contextKey("logger")
)

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		// check the request context as well
		if v := c.Request.Context().Value(actorKey); v != nil {
			if actor, ok := v.(domain.Actor); ok {
				return actor, true
			}
		}
		return domain.Actor{}, false
	}

	actor, ok := actorVal.(domain.Actor)
	if !ok {
		return domain.Actor{}, false
	}
	return actor, true
}
