package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: Unauthorized("no token"), want: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("role"), want: http.StatusForbidden},
		{name: "not found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "conflict", err: Conflict("state"), want: http.StatusConflict},
		{name: "wrapped conflict", err: fmt.Errorf("assign: %w", Conflict("state")), want: http.StatusConflict},
		{name: "foreign error", err: errors.New("db down"), want: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestInternal_KeepsKindedErrors(t *testing.T) {
	conflict := Conflict("El pedido no está PENDIENTE")
	assert.Same(t, conflict, Internal("No se pudo asignar", conflict))

	cause := errors.New("deadlock")
	err := Internal("No se pudo asignar", cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Pedido no encontrado", PublicMessage(NotFound("Pedido no encontrado")))
	assert.Equal(t, "Error interno del servidor", PublicMessage(errors.New("pq: relation does not exist")))
}
