package middleware

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/pkg/options"
)

// CallerKey is the gin context key holding the resolved entity.Caller.
const CallerKey = "cockpit-caller"

// TokenAuth resolves the bearer token to a caller using the configured token
// table. Unknown or missing tokens resolve to an anonymous tier-none caller
// rather than a 401: the assistant answers everyone, it just refuses to act
// for callers it does not know.
//
// Token values support ${ENV_VAR} expansion and are compared in constant time.
func TokenAuth(tokens []options.AccessTokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CallerKey, resolveCaller(tokens, bearerToken(c)))
		c.Next()
	}
}

// CallerFrom returns the caller resolved by TokenAuth, or an anonymous
// tier-none caller if the middleware did not run.
func CallerFrom(c *gin.Context) entity.Caller {
	if v, ok := c.Get(CallerKey); ok {
		if caller, ok := v.(entity.Caller); ok {
			return caller
		}
	}
	return entity.Caller{Tier: entity.TierNone}
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return h[len(prefix):]
}

func resolveCaller(tokens []options.AccessTokenConfig, provided string) entity.Caller {
	if provided == "" {
		return entity.Caller{Tier: entity.TierNone}
	}
	for _, t := range tokens {
		expected := resolveEnvValue(t.Token)
		if expected == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1 {
			name := t.Name
			if name == "" {
				name = "caller"
			}
			return entity.Caller{
				ID:   strings.ToLower(strings.ReplaceAll(name, " ", "-")),
				Name: name,
				Tier: entity.ParseTier(t.Tier),
			}
		}
	}
	return entity.Caller{Tier: entity.TierNone}
}

func resolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}
