package text

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/arthur-debert/podkeeper/pkg/ui/styles"
)

func TestResultLines(t *testing.T) {
	result := &reconcile.Result{
		Plugin:    "p",
		Operation: reconcile.OperationAdd,
		Added:     []types.Unit{{Kind: types.KindSource, Key: "cdn"}},
		Retained:  []types.Unit{{Kind: types.KindLibrary, Key: "AF"}},
		Conflicts: []reconcile.Conflict{{
			Plugin:     "p",
			Key:        "AF",
			Registered: types.Pod{Name: "AF", Pin: types.Pin{Spec: "~> 4.0"}},
			Requested:  types.Pod{Name: "AF", Pin: types.Pin{Spec: "~> 3.0"}},
		}},
		Unresolved:      []string{"AF_VERSION"},
		ManifestChanged: true,
	}

	lines := ResultLines(result)
	require.Len(t, lines, 6)
	assert.Equal(t, Line{styles.Header, "add p"}, lines[0])
	assert.Equal(t, Line{styles.Success, "  + source:cdn"}, lines[1])
	assert.Equal(t, Line{styles.Muted, "  = library:AF"}, lines[2])
	assert.Equal(t, "  ! AF: keeping ~> 4.0, p wanted ~> 3.0", lines[3].Text)
	assert.Contains(t, lines[4].Text, "AF_VERSION")
	assert.Equal(t, Line{styles.Warning, "Podfile updated, pod install did not complete"}, lines[5])
}

func TestRenderStatus(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	require.NoError(t, r.RenderStatus(&status.StatusResult{
		LedgerPath: "/p/pods.json",
		Entries: []reconcile.StatusEntry{
			{Entry: ledger.Entry{Kind: types.KindDeclaration, Key: "fw", Payload: types.Payload{Declaration: "use_frameworks!"}, Count: 2}, InManifest: true},
			{Entry: ledger.Entry{Kind: types.KindLibrary, Key: "AF", Payload: types.Payload{Name: "AFNetworking", Pin: types.Pin{Spec: "4.0"}}, Count: 1}},
		},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"KIND", "KEY", "VALUE", "COUNT", "PODFILE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"declaration", "fw", "use_frameworks!", "2", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"library", "AF", "AFNetworking", "4.0", "1", "missing"}, strings.Fields(lines[2]))
}

func TestRenderStatus_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).RenderStatus(&status.StatusResult{LedgerPath: "/p/pods.json"}))
	assert.Equal(t, "No dependencies registered in /p/pods.json\n", buf.String())
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).RenderError(errors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}
