package auth

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const principalKey = "auth.principal"

// Middleware rejects requests without a valid bearer token with
// 401 Unauthorized. For valid tokens, the principal is stored in the
// request context.
func Middleware(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Error()})
			return
		}

		p, err := issuer.Verify(token)
		if err != nil {
			log.Debug().Str("request_id", requestid.Get(c)).Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthorized.Error()})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// User returns the principal of the request. The second return value
// is false for requests that did not pass the Middleware.
func User(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}

	p, ok := v.(Principal)
	return p, ok
}
