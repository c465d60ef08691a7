package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgauge/internal/apperr"
)

func TestScoperFor(t *testing.T) {
	scoped := New(true)
	open := New(false)

	tests := []struct {
		name      string
		scoper    *Scoper
		principal string
		kind      Kind
		want      Scope
	}{
		{"broker owns clients", scoped, "broker-1", KindClient, Scope{BrokerID: "broker-1"}},
		{"broker owns applications", scoped, "broker-1", KindApplication, Scope{BrokerID: "broker-1"}},
		{"broker owns documents via client", scoped, "broker-1", KindDocument, Scope{BrokerID: "broker-1"}},
		{"broker owns tasks", scoped, "broker-1", KindTask, Scope{BrokerID: "broker-1"}},
		{"broker owns reminders", scoped, "broker-1", KindReminder, Scope{BrokerID: "broker-1"}},
		{"scripts are shared", scoped, "broker-1", KindScript, Scope{All: true}},
		{"anonymous matches nothing", scoped, Anonymous, KindClient, Scope{}},
		{"open mode is unscoped", open, Anonymous, KindClient, Scope{All: true}},
		{"open mode ignores principal", open, "broker-1", KindTask, Scope{All: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.scoper.For(tt.principal, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoperForUnknownKind(t *testing.T) {
	_, err := New(true).For("broker-1", Kind("invoice"))
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))
}

func TestScopeEmpty(t *testing.T) {
	assert.True(t, Scope{}.Empty())
	assert.False(t, Scope{All: true}.Empty())
	assert.False(t, Scope{BrokerID: "b"}.Empty())
}
