package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanly/mirum-notify/pkg/helpers"
)

func newAuthRouter(tokens *helpers.TriggerTokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TriggerAuth(tokens))
	r.POST("/tick", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"source": c.GetString("trigger_source")})
	})
	return r
}

func TestTriggerAuthAcceptsValidToken(t *testing.T) {
	tokens := helpers.NewTriggerTokenManager("secret", time.Minute)
	token, err := tokens.Generate("scheduler")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newAuthRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scheduler")
}

func TestTriggerAuthRejectsMissingHeader(t *testing.T) {
	tokens := helpers.NewTriggerTokenManager("secret", time.Minute)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	newAuthRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTriggerAuthRejectsForgedToken(t *testing.T) {
	tokens := helpers.NewTriggerTokenManager("secret", time.Minute)
	forged, err := helpers.NewTriggerTokenManager("other", time.Minute).Generate("scheduler")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	newAuthRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
