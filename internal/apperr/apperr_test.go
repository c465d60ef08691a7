package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("status", "must be one of the declared values"), KindValidation},
		{"not found", NotFound("client"), KindNotFound},
		{"authorization", Forbidden("application"), KindAuthorization},
		{"transient", Transient("summary query", errors.New("connection refused")), KindTransient},
		{"configuration", Configuration("unknown entity kind"), KindConfiguration},
		{"plain error", errors.New("boom"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("list clients: %w", Validation("ordering", "unknown field"))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Transient("store unreachable", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsTransient(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "validation: status: invalid value", Validation("status", "invalid value").Error())
	assert.Equal(t, "not_found: client not found", NotFound("client").Error())
}
