package add

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/filesystem"
	"github.com/arthur-debert/podkeeper/pkg/testutil"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/arthur-debert/podkeeper/pkg/variables"
)

func TestAddDependencies_FromPluginDir(t *testing.T) {
	project := testutil.TempDir(t, "project")
	pluginsDir := testutil.TempDir(t, "plugins")
	pluginDir := testutil.NewPlugin(t, pluginsDir, "cordova-plugin-net").
		Source("cdn", "https://cdn.cocoapods.org/").
		Declaration("frameworks", "use_frameworks!").
		Pod("AFNetworking", "~> 4.0").
		Build()

	inst := testutil.NewMockInstaller()
	check := testutil.NewMockToolCheck()

	result, err := AddDependencies(context.Background(), AddOptions{
		ProjectRoot: project,
		PluginDir:   pluginDir,
		Installer:   inst,
		ToolCheck:   check,
	})
	require.NoError(t, err)

	assert.Equal(t, "cordova-plugin-net", result.Plugin)
	assert.Len(t, result.Added, 3)
	assert.True(t, result.InstallerRan)
	inst.AssertCalled(t, "Run", mock.Anything, project)

	podfile := testutil.ReadFile(t, filepath.Join(project, "Podfile"))
	assert.Contains(t, podfile, "source 'https://cdn.cocoapods.org/'\n")
	assert.Contains(t, podfile, "use_frameworks!\n")
	assert.Contains(t, podfile, "target 'App' do\n")
	assert.Contains(t, podfile, "\tpod 'AFNetworking', '~> 4.0'\n")

	ledger := testutil.ReadFile(t, filepath.Join(project, "pods.json"))
	assert.Contains(t, ledger, `"AFNetworking"`)
	assert.Contains(t, ledger, `"count": 1`)
}

func TestAddDependencies_ProjectConfig(t *testing.T) {
	project := testutil.TempDir(t, "project")
	testutil.CreateFile(t, project, ".podkeeper.toml", `
[manifest]
file = "ios/Podfile"
target = "MyApp"
project = "MyApp.xcodeproj"

[ledger]
file = "ios/pods.json"
`)

	inst := testutil.NewMockInstaller()
	_, err := AddDependencies(context.Background(), AddOptions{
		ProjectRoot: project,
		PluginID:    "inline",
		Specs: []types.DependencySpec{{
			Kind: types.KindLibrary,
			Key:  "Maps",
			Library: &types.LibrarySpec{
				Name: variables.Literal("GoogleMaps"),
				Spec: variables.Reference("MAPS_VERSION"),
			},
		}},
		Install:   types.InstallOptions{Variables: map[string]string{"MAPS_VERSION": "8.4.0"}},
		Installer: inst,
		ToolCheck: testutil.NewMockToolCheck(),
	})
	require.NoError(t, err)

	podfile := testutil.ReadFile(t, filepath.Join(project, "ios", "Podfile"))
	assert.Contains(t, podfile, "target 'MyApp' do\n\tproject 'MyApp.xcodeproj'\n")
	assert.Contains(t, podfile, "pod 'GoogleMaps', '8.4.0'")
	assert.True(t, testutil.FileExists(t, filepath.Join(project, "ios", "pods.json")))
	inst.AssertCalled(t, "Run", mock.Anything, filepath.Join(project, "ios"))
}

func TestAddDependencies_Errors(t *testing.T) {
	t.Run("missing project", func(t *testing.T) {
		_, err := AddDependencies(context.Background(), AddOptions{
			ProjectRoot: filepath.Join(t.TempDir(), "missing"),
			PluginID:    "p",
		})
		assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(err))
	})

	t.Run("plugin without declaration", func(t *testing.T) {
		project := testutil.TempDir(t, "project")
		_, err := AddDependencies(context.Background(), AddOptions{
			ProjectRoot: project,
			PluginDir:   testutil.TempDir(t, "empty-plugin"),
		})
		assert.Equal(t, errors.ErrPluginNotFound, errors.GetErrorCode(err))
	})

	t.Run("invalid config", func(t *testing.T) {
		project := testutil.TempDir(t, "project")
		testutil.CreateFile(t, project, ".podkeeper.toml", "[ledger]\nfile = \"Podfile\"\n")
		_, err := AddDependencies(context.Background(), AddOptions{ProjectRoot: project, PluginID: "p"})
		assert.Equal(t, errors.ErrConfigInvalid, errors.GetErrorCode(err))
	})

	t.Run("installer failure returns result", func(t *testing.T) {
		project := testutil.TempDir(t, "project")
		result, err := AddDependencies(context.Background(), AddOptions{
			ProjectRoot: project,
			PluginID:    "p",
			Specs: []types.DependencySpec{{
				Kind:    types.KindLibrary,
				Key:     "A",
				Library: &types.LibrarySpec{Name: variables.Literal("A")},
			}},
			Installer: testutil.NewMockInstaller().Fail(errors.New(errors.ErrInstallerFailed, "boom")),
			ToolCheck: testutil.NewMockToolCheck(),
		})
		assert.Equal(t, errors.ErrInstallerFailed, errors.GetErrorCode(err))
		require.NotNil(t, result)
		assert.True(t, result.ManifestChanged)
		assert.True(t, testutil.FileExists(t, filepath.Join(project, "Podfile")))
	})
}

func TestAddDependencies_ConfigFromSameFS(t *testing.T) {
	project := testutil.TempDir(t, "project")
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(project, 0755))
	require.NoError(t, fsys.WriteFile(filepath.Join(project, ".podkeeper.toml"),
		[]byte("[manifest]\nfile = \"ios/Podfile\"\ntarget = \"MemoryApp\"\n"), 0644))

	inst := testutil.NewMockInstaller()
	_, err := AddDependencies(context.Background(), AddOptions{
		ProjectRoot: project,
		PluginID:    "inline",
		Specs: []types.DependencySpec{{
			Kind:    types.KindLibrary,
			Key:     "AFNetworking",
			Library: &types.LibrarySpec{Name: variables.Literal("AFNetworking")},
		}},
		FS:        fsys,
		Installer: inst,
		ToolCheck: testutil.NewMockToolCheck(),
	})
	require.NoError(t, err)

	data, err := fsys.ReadFile(filepath.Join(project, "ios", "Podfile"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "target 'MemoryApp' do\n")
	assert.False(t, testutil.FileExists(t, filepath.Join(project, "ios", "Podfile")), "nothing is written to disk")
	inst.AssertCalled(t, "Run", mock.Anything, filepath.Join(project, "ios"))
}
