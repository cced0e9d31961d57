package registry

import (
	"context"
	"testing"

	"dexit/pkg/dexit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoModule() *dexit.Module {
	return &dexit.Module{
		Name: "core",
		Commands: map[string]*dexit.Command{
			"echo": {
				Description: "echoes args back as the result",
				ArgsSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"message"},
					"properties": map[string]interface{}{
						"message": map[string]interface{}{"type": "string"},
					},
				},
				Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
					notifyReady()
					return args, nil
				},
			},
		},
	}
}

func TestRegister_DuplicateNameRejected(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(echoModule()))

	err := r.Register(echoModule())
	assert.Error(t, err)
}

func TestRegister_ReservedCommandPrefixRejected(t *testing.T) {
	r := New()
	m := &dexit.Module{
		Name: "bad",
		Commands: map[string]*dexit.Command{
			"_internal": {Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
				notifyReady()
				return nil, nil
			}},
		},
	}

	err := r.Register(m)
	assert.Error(t, err)
}

func TestGetCommand_ResolvesModuleDotCommand(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(echoModule()))

	cmd, ok := r.GetCommand("core.echo")
	require.True(t, ok)
	assert.Equal(t, "echoes args back as the result", cmd.Description)
}

func TestGetCommand_UnknownModuleReturnsFalse(t *testing.T) {
	r := New()
	_, ok := r.GetCommand("nope.echo")
	assert.False(t, ok)
}

func TestParseCommand_SplitsAtFirstDot(t *testing.T) {
	module, command, ok := ParseCommand("http.get")
	require.True(t, ok)
	assert.Equal(t, "http", module)
	assert.Equal(t, "get", command)
}

func TestParseCommand_NoDotIsInvalid(t *testing.T) {
	_, _, ok := ParseCommand("invalid")
	assert.False(t, ok)
}

func TestValidateArgs_RejectsMissingRequiredField(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(echoModule()))

	err := r.ValidateArgs("core.echo", map[string]interface{}{})
	assert.Error(t, err)
}

func TestValidateArgs_AcceptsValidArgs(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(echoModule()))

	err := r.ValidateArgs("core.echo", map[string]interface{}{"message": "hi"})
	assert.NoError(t, err)
}

func TestValidateArgs_CommandWithoutSchemaAlwaysPasses(t *testing.T) {
	r := New()
	m := &dexit.Module{
		Name: "noop",
		Commands: map[string]*dexit.Command{
			"run": {Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
				notifyReady()
				return nil, nil
			}},
		},
	}
	require.NoError(t, r.Register(m))

	assert.NoError(t, r.ValidateArgs("noop.run", map[string]interface{}{"anything": true}))
}

func TestGetAllModules_ReturnsEveryRegistered(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(echoModule()))

	modules := r.GetAllModules()
	require.Len(t, modules, 1)
	assert.Equal(t, "core", modules[0].Name)
}
