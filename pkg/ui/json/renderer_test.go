package json

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).RenderResult(&reconcile.Result{
		Plugin:          "p",
		Operation:       reconcile.OperationRemove,
		Removed:         []types.Unit{{Kind: types.KindLibrary, Key: "AF"}},
		ManifestChanged: true,
	}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "remove", decoded["operation"])
	assert.Equal(t, true, decoded["manifest_changed"])
	assert.Equal(t, false, decoded["installer_ran"])
	assert.NotContains(t, decoded, "added")
	assert.Equal(t, []interface{}{map[string]interface{}{"kind": "library", "key": "AF"}}, decoded["removed"])
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrToolMissing, "pod not found").WithDetail("tool", "pod")
	require.NoError(t, New(&buf).RenderError(err))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "TOOL_MISSING", decoded["code"])
	assert.Equal(t, map[string]interface{}{"tool": "pod"}, decoded["details"])
}

func TestRenderError_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).RenderError(stderrors.New("boom")))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]interface{}{"error": "boom"}, decoded)
}
