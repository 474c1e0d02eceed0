package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComparesCodes(t *testing.T) {
	err := fmt.Errorf("get post: %w", NotFound("Post not found"))

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrValidation))
}

func TestOperationFailedKeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := OperationFailed("Failed to fetch posts", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to fetch posts", err.Error())

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"OPERATION_FAILED","message":"Failed to fetch posts"}`, string(body))
}

func TestStatusCode(t *testing.T) {
	tests := map[string]int{
		ErrCodeUnauthenticated:      http.StatusUnauthorized,
		ErrCodeAuthenticationFailed: http.StatusUnauthorized,
		ErrCodeNotFound:             http.StatusNotFound,
		ErrCodeValidation:           http.StatusBadRequest,
		ErrCodeInvalidInput:         http.StatusBadRequest,
		ErrCodeOperationFailed:      http.StatusInternalServerError,
		ErrCodeInternalError:        http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, StatusCode(code), code)
	}
}

func TestFromErrorHidesUntypedErrors(t *testing.T) {
	assert.Same(t, ErrInternalError, FromError(stderrors.New("pq: relation does not exist")))

	typed := Validation("", map[string]string{"email": "is required"})
	assert.Same(t, typed, FromError(typed))
	assert.Equal(t, ErrValidation.Message, typed.Message)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, Unauthenticated("You must be logged in!"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":{"code":"UNAUTHENTICATED","message":"You must be logged in!"}}`, w.Body.String())
}
