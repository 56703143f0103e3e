package actions

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func noopHandler(_ context.Context, _ json.RawMessage) (any, error) {
	return "ok", nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	err := r.Register(Definition{Name: "do_thing", Handler: noopHandler})
	require.NoError(t, err)

	def, ok := r.Get("do_thing")
	assert.True(t, ok)
	assert.Equal(t, "do_thing", def.Name)
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	require.NoError(t, r.Register(Definition{Name: "do_thing", Handler: noopHandler}))
	err := r.Register(Definition{Name: "do_thing", Handler: noopHandler})

	assert.ErrorIs(t, err, ErrDuplicateAction)
}

func TestRegisterRequiresNameAndHandler(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	assert.ErrorIs(t, r.Register(Definition{Handler: noopHandler}), ErrInvalidArguments)
	assert.ErrorIs(t, r.Register(Definition{Name: "no_handler"}), ErrInvalidArguments)
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, r.Register(Definition{Name: name, Handler: noopHandler}))
	}

	defs := r.List()
	require.Len(t, defs, 3)
	assert.Equal(t, "charlie", defs[0].Name)
	assert.Equal(t, "alpha", defs[1].Name)
	assert.Equal(t, "bravo", defs[2].Name)
}

func TestInvokeUnknownAction(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	_, err := r.Invoke(context.Background(), "nope", nil)

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestInvoke(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	require.NoError(t, r.Register(Definition{
		Name: "echo",
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var body map[string]string
			if err := json.Unmarshal(args, &body); err != nil {
				return nil, err
			}
			return body["value"], nil
		},
	}))

	result, err := r.Invoke(context.Background(), "echo", json.RawMessage(`{"value": "hi"}`))

	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestDefinitionJSONHidesHandler(t *testing.T) {
	def := Definition{
		Name:       "do_thing",
		SystemType: SystemVCS,
		Signature:  "(repo) -> status",
		Arguments:  []string{"repo"},
		Handler:    noopHandler,
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "Handler")
	assert.Contains(t, string(data), `"system_type":"version_control_system"`)
}
