package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/playhub/community-api/internal/auth"
	"github.com/playhub/community-api/internal/constants"
	"github.com/sirupsen/logrus"
)

// Authenticate resolves the caller from a Bearer token, falling back to the
// session cookie. It never rejects a request: an absent or invalid
// credential leaves the request anonymous and guarded operations refuse it.
func Authenticate(identity auth.IdentityProvider, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller *auth.Caller

		if token, ok := bearerToken(c); ok {
			claims, err := identity.ParseToken(token)
			if err != nil {
				log.WithError(err).WithField("request_id", c.GetString(constants.ContextKeyRequestID)).Debug("ignoring invalid bearer token")
			} else {
				caller = &auth.Caller{UserID: claims.UserID, Email: claims.Email}
			}
		}

		if caller == nil {
			session := sessions.Default(c)
			if userID, ok := toUserID(session.Get(constants.ContextKeyUserID)); ok && userID != 0 {
				caller = &auth.Caller{UserID: userID}
			}
		}

		if caller != nil {
			c.Set(constants.ContextKeyUserID, caller.UserID)
			c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), caller))
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// toUserID normalizes a stored user ID. Session stores may decode numbers
// into a different integer type than the one written.
func toUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
