package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupSessionTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart", Session(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": GetSessionID(c)})
	})
	return router
}

func TestSession_IssuesTokenWhenAbsent(t *testing.T) {
	router := setupSessionTest()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	token := w.Header().Get(SessionTokenHeader)
	assert.NotEmpty(t, token)
	_, err := uuid.Parse(token)
	assert.NoError(t, err)
}

func TestSession_EchoesExistingToken(t *testing.T) {
	router := setupSessionTest()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(SessionTokenHeader, "my-session")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "my-session", w.Header().Get(SessionTokenHeader))
}

func TestSession_ReplacesOversizedToken(t *testing.T) {
	router := setupSessionTest()

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(SessionTokenHeader, string(long))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, string(long), w.Header().Get(SessionTokenHeader))
}
