package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/cockpit/internal/cockpit/service/assistant/domain/entity"
	"github.com/colonyops/cockpit/internal/pkg/options"
)

var testTokens = []options.AccessTokenConfig{
	{Token: "vol-token", Name: "Field Volunteer", Tier: "read_only"},
	{Token: "coord-token", Name: "Coordinator", Tier: "read_write"},
	{Token: "admin-token", Name: "Program Admin", Tier: "full"},
	{Token: "${COCKPIT_TEST_TOKEN}", Name: "Env Caller", Tier: "read_write"},
}

func callerFor(t *testing.T, authorization string) entity.Caller {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/v1/assistant/chat", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	TokenAuth(testTokens)(c)
	return CallerFrom(c)
}

func TestTokenAuthKnownTokens(t *testing.T) {
	caller := callerFor(t, "Bearer coord-token")
	assert.Equal(t, entity.TierReadWrite, caller.Tier)
	assert.Equal(t, "Coordinator", caller.Name)
	assert.Equal(t, "coordinator", caller.ID)

	assert.Equal(t, entity.TierReadOnly, callerFor(t, "Bearer vol-token").Tier)
	assert.Equal(t, entity.TierFull, callerFor(t, "Bearer admin-token").Tier)
}

func TestTokenAuthUnknownTokenIsTierNone(t *testing.T) {
	assert.Equal(t, entity.TierNone, callerFor(t, "Bearer wrong-token").Tier)
}

func TestTokenAuthMissingHeaderIsTierNone(t *testing.T) {
	assert.Equal(t, entity.TierNone, callerFor(t, "").Tier)
}

func TestTokenAuthNonBearerSchemeIsTierNone(t *testing.T) {
	assert.Equal(t, entity.TierNone, callerFor(t, "Basic coord-token").Tier)
}

func TestTokenAuthEnvExpansion(t *testing.T) {
	t.Setenv("COCKPIT_TEST_TOKEN", "secret-from-env")

	caller := callerFor(t, "Bearer secret-from-env")
	assert.Equal(t, entity.TierReadWrite, caller.Tier)
	assert.Equal(t, "Env Caller", caller.Name)

	// The literal placeholder must never authenticate.
	assert.Equal(t, entity.TierNone, callerFor(t, "Bearer ${COCKPIT_TEST_TOKEN}").Tier)
}

func TestCallerFromWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, entity.TierNone, CallerFrom(c).Tier)
}
