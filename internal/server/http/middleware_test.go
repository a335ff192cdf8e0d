package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authapp "remind/internal/auth/app"
	authdomain "remind/internal/auth/domain"
)

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", extractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", extractBearerToken("bearer abc"))
	assert.Empty(t, extractBearerToken("abc"))
	assert.Empty(t, extractBearerToken("Basic abc"))
	assert.Empty(t, extractBearerToken(""))
}

func TestRequireCapabilityRejectsMissingGrant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := authapp.NewService(nil, nil)

	engine := gin.New()
	engine.GET("/probe",
		func(c *gin.Context) {
			// A role outside the capability map holds no grants at all.
			c.Set(authUserContextKey, authdomain.User{ID: "u1", Role: authdomain.Role("guest")})
		},
		RequireCapability(service, authdomain.CapabilityManageReminders),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireCapabilityWithoutAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := authapp.NewService(nil, nil)

	engine := gin.New()
	engine.GET("/probe",
		RequireCapability(service, authdomain.CapabilityGetReminders),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
