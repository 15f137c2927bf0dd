// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory afero filesystem, real temp dir for the round trip
// PURPOSE: Test reference counting and persistence of the ledger

package ledger_test

import (
	"path/filepath"
	"testing"

	poderrors "github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/filesystem"
	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerPath = "/project/ios/pods.json"

func afPayload(spec string) types.Payload {
	return types.PodPayload(types.Pod{Name: "AFNetworking", Pin: types.Pin{Spec: spec}})
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	l, err := ledger.Load(filesystem.NewMemory(), ledgerPath)
	require.NoError(t, err)

	assert.Empty(t, l.Entries())
	assert.Equal(t, ledgerPath, l.Path())
	for _, kind := range types.Kinds {
		assert.Equal(t, 0, l.Table(kind).Len())
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/project/ios", 0755))
	require.NoError(t, fsys.WriteFile(ledgerPath, []byte("{not json"), 0644))

	_, err := ledger.Load(fsys, ledgerPath)
	require.Error(t, err)
	assert.True(t, poderrors.IsErrorCode(err, poderrors.ErrLedgerRead))
}

func TestTable_ReferenceCounting(t *testing.T) {
	l, err := ledger.Load(filesystem.NewMemory(), ledgerPath)
	require.NoError(t, err)
	libs := l.Libraries()

	t.Run("increment_requires_entry", func(t *testing.T) {
		err := libs.Increment("AFNetworking")
		require.Error(t, err)
		assert.True(t, poderrors.IsErrorCode(err, poderrors.ErrNotFound))
	})

	t.Run("set_then_increment", func(t *testing.T) {
		libs.SetEntry("AFNetworking", afPayload("~> 4.0"))
		require.NoError(t, libs.Increment("AFNetworking"))

		e, ok := libs.Get("AFNetworking")
		require.True(t, ok)
		assert.Equal(t, 2, e.Count)
		assert.Equal(t, types.KindLibrary, e.Kind)
		assert.Equal(t, "~> 4.0", e.Payload.Spec)
	})

	t.Run("decrement_to_zero_deletes", func(t *testing.T) {
		remaining, found := libs.Decrement("AFNetworking")
		assert.True(t, found)
		assert.Equal(t, 1, remaining)

		remaining, found = libs.Decrement("AFNetworking")
		assert.True(t, found)
		assert.Equal(t, 0, remaining)

		_, ok := libs.Get("AFNetworking")
		assert.False(t, ok, "zero-count entries are deleted")
	})

	t.Run("decrement_absent_is_noop", func(t *testing.T) {
		remaining, found := libs.Decrement("AFNetworking")
		assert.False(t, found)
		assert.Equal(t, 0, remaining)
		assert.Equal(t, 0, libs.Len())
	})
}

func TestCountNeverNegative(t *testing.T) {
	l, err := ledger.Load(filesystem.NewMemory(), ledgerPath)
	require.NoError(t, err)
	decls := l.Declarations()

	ops := []struct {
		install bool
		want    int
	}{
		{true, 1}, {false, 0}, {false, 0}, {true, 1}, {true, 2}, {false, 1}, {false, 0}, {false, 0},
	}

	for i, op := range ops {
		if op.install {
			if _, ok := decls.Get("frameworks"); ok {
				require.NoError(t, decls.Increment("frameworks"))
			} else {
				decls.SetEntry("frameworks", types.Payload{Declaration: "use_frameworks!"})
			}
		} else {
			decls.Decrement("frameworks")
		}

		e, _ := decls.Get("frameworks")
		assert.GreaterOrEqual(t, e.Count, 0)
		assert.Equal(t, op.want, e.Count, "step %d", i)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ios", "pods.json")
	fsys := filesystem.NewOS()

	l, err := ledger.Load(fsys, path)
	require.NoError(t, err)

	l.Declarations().SetEntry("frameworks", types.Payload{Declaration: "use_frameworks!"})
	l.Sources().SetEntry("cdn", types.Payload{Source: "https://cdn.cocoapods.org/"})
	l.Libraries().SetEntry("AFNetworking", afPayload("~> 4.0"))
	require.NoError(t, l.Libraries().Increment("AFNetworking"))
	l.Libraries().SetEntry("Firebase", types.PodPayload(types.Pod{
		Name: "Firebase/Core",
		Pin:  types.Pin{Git: "https://github.com/firebase/firebase-ios-sdk.git", Tag: "10.0.0"},
	}))

	require.NoError(t, l.Write())

	_, err = fsys.Stat(path + ".tmp")
	assert.Error(t, err, "temp file must not survive the write")

	reloaded, err := ledger.Load(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, l.Entries(), reloaded.Entries())
	assert.Len(t, reloaded.Entries(), 4)
}

func TestWrite_Format(t *testing.T) {
	fsys := filesystem.NewMemory()
	l, err := ledger.Load(fsys, ledgerPath)
	require.NoError(t, err)

	l.Libraries().SetEntry("AFNetworking", afPayload("~> 4.0"))
	require.NoError(t, l.Write())

	data, err := fsys.ReadFile(ledgerPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"declarations": {},
		"sources": {},
		"libraries": {"AFNetworking": {"name": "AFNetworking", "spec": "~> 4.0", "count": 1}}
	}`, string(data))
}

func TestLoad_DropsZeroCountRecords(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/project/ios", 0755))
	require.NoError(t, fsys.WriteFile(ledgerPath, []byte(`{
		"libraries": {
			"Stale": {"name": "Stale", "count": 0},
			"Live": {"name": "Live", "count": 2}
		}
	}`), 0644))

	l, err := ledger.Load(fsys, ledgerPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Live"}, l.Libraries().Keys())
	assert.Equal(t, 0, l.Declarations().Len())
}

func TestEntries_Order(t *testing.T) {
	l, err := ledger.Load(filesystem.NewMemory(), ledgerPath)
	require.NoError(t, err)

	l.Libraries().SetEntry("b", types.Payload{Name: "b"})
	l.Libraries().SetEntry("a", types.Payload{Name: "a"})
	l.Sources().SetEntry("s", types.Payload{Source: "https://s"})
	l.Declarations().SetEntry("d", types.Payload{Declaration: "inhibit_all_warnings!"})

	var units []string
	for _, e := range l.Entries() {
		units = append(units, e.Unit().String())
	}
	assert.Equal(t, []string{"declaration:d", "source:s", "library:a", "library:b"}, units)
}
