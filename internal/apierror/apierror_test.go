package apierror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	err := Validation("code", "El código debe ser numérico")
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "El código debe ser numérico", err.Message())
	assert.Equal(t, "El código debe ser numérico", err.Error())
	assert.True(t, IsValidation(err))
}

func TestBusinessFirstMessageWins(t *testing.T) {
	err := Business([]FieldError{
		{Field: "a", Message: "primero"},
		{Field: "b", Message: "segundo"},
	})
	assert.Equal(t, "primero", err.Message())
}

func TestBusinessEmptyFallback(t *testing.T) {
	err := Business(nil)
	assert.Equal(t, "Error desconocido", err.Message())
}

func TestFromTransportClassification(t *testing.T) {
	assert.Nil(t, FromTransport(nil))

	gql := FromTransport(errors.New("graphql: not authenticated"))
	assert.Equal(t, KindGraphQL, gql.Kind)
	assert.Equal(t, "graphql: not authenticated", gql.Message())

	transport := FromTransport(errors.New("dial tcp: connection refused"))
	assert.Equal(t, KindTransport, transport.Kind)
	assert.False(t, IsValidation(transport))
}

func TestFromTransportPassesThrough(t *testing.T) {
	original := Validation("x", "ya clasificado")
	classified := FromTransport(original)
	assert.Same(t, original, classified)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("raiz")
	err := FromTransport(cause)
	assert.ErrorIs(t, err, cause)
}

func TestFieldErrorString(t *testing.T) {
	require.Equal(t, "code: inválido", FieldError{Field: "code", Message: "inválido"}.Error())
	require.Equal(t, "inválido", FieldError{Message: "inválido"}.Error())
}
