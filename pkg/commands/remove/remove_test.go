package remove

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkeeper/pkg/commands/add"
	"github.com/arthur-debert/podkeeper/pkg/testutil"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

func TestRemoveDependencies_SharedPod(t *testing.T) {
	project := testutil.TempDir(t, "project")
	pluginsDir := testutil.TempDir(t, "plugins")
	first := testutil.NewPlugin(t, pluginsDir, "first").Pod("AFNetworking", "~> 4.0").Build()
	second := testutil.NewPlugin(t, pluginsDir, "second").
		Pod("AFNetworking", "~> 4.0").
		Pod("SDWebImage", "5.0").
		Build()

	inst := testutil.NewMockInstaller()
	check := testutil.NewMockToolCheck()
	ctx := context.Background()

	for _, dir := range []string{first, second} {
		_, err := add.AddDependencies(ctx, add.AddOptions{
			ProjectRoot: project,
			PluginDir:   dir,
			Installer:   inst,
			ToolCheck:   check,
		})
		require.NoError(t, err)
	}
	inst.AssertNumberOfCalls(t, "Run", 2)

	result, err := RemoveDependencies(ctx, RemoveOptions{
		ProjectRoot: project,
		PluginDir:   second,
		Installer:   inst,
		ToolCheck:   check,
	})
	require.NoError(t, err)

	assert.Equal(t, []types.Unit{{Kind: types.KindLibrary, Key: "SDWebImage"}}, result.Removed)
	assert.Equal(t, []types.Unit{{Kind: types.KindLibrary, Key: "AFNetworking"}}, result.Retained)
	inst.AssertNumberOfCalls(t, "Run", 3)

	podfile := testutil.ReadFile(t, filepath.Join(project, "Podfile"))
	assert.Contains(t, podfile, "pod 'AFNetworking', '~> 4.0'")
	assert.NotContains(t, podfile, "SDWebImage")

	result, err = RemoveDependencies(ctx, RemoveOptions{
		ProjectRoot: project,
		PluginDir:   first,
		Installer:   inst,
		ToolCheck:   check,
	})
	require.NoError(t, err)
	assert.Len(t, result.Removed, 1)
	assert.NotContains(t, testutil.ReadFile(t, filepath.Join(project, "Podfile")), "AFNetworking")
}

func TestRemoveDependencies_UnknownPlugin(t *testing.T) {
	project := testutil.TempDir(t, "project")
	plugin := testutil.NewPlugin(t, testutil.TempDir(t, "plugins"), "never-added").Pod("Ghost", "1.0").Build()

	inst := testutil.NewMockInstaller()
	result, err := RemoveDependencies(context.Background(), RemoveOptions{
		ProjectRoot: project,
		PluginDir:   plugin,
		Installer:   inst,
		ToolCheck:   testutil.NewMockToolCheck(),
	})
	require.NoError(t, err)
	assert.Len(t, result.Missing, 1)
	assert.False(t, result.ManifestChanged)
	inst.AssertNumberOfCalls(t, "Run", 0)
}
