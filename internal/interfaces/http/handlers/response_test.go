package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{
			name:       "conflict",
			err:        apperr.Conflict("El pedido no está PENDIENTE"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"El pedido no está PENDIENTE"}`,
		},
		{
			name:       "unexpected error hides cause",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Error interno del servidor"}`,
			wantLogged: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			respondError(c, tc.err)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.JSONEq(t, tc.wantBody, recorder.Body.String())
			assert.Equal(t, tc.wantLogged, len(c.Errors) > 0)
		})
	}
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		value  string
		wantID uint
		wantOK bool
	}{
		{value: "12", wantID: 12, wantOK: true},
		{value: "0", wantOK: false},
		{value: "-3", wantOK: false},
		{value: "abc", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Params = gin.Params{{Key: "id", Value: tc.value}}

			id, ok := parseID(c, "id")

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, recorder.Code)
			}
		})
	}
}
