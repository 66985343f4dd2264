package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/journal/internal/jsonfile"
	"github.com/mesh-intelligence/journal/internal/sqlite"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func TestStoreScenario(t *testing.T) {
	backends := map[string]func(t *testing.T) types.Backend{
		"memory": func(t *testing.T) types.Backend { return &memoryBackend{} },
		"json": func(t *testing.T) types.Backend {
			return jsonfile.NewBackend(filepath.Join(t.TempDir(), jsonfile.FileName))
		},
		"sqlite": func(t *testing.T) types.Backend {
			return sqlite.NewBackend(filepath.Join(t.TempDir(), sqlite.DatabaseFile))
		},
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			s := NewStore(newBackend(t))

			e, err := s.AddEntry("2023-12-10", "Met with team")
			require.NoError(t, err)
			assert.Equal(t, types.Entry{Date: "2023-12-10", Content: "Met with team"}, e)

			list, err := s.ListEntries()
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "2023-12-10", list[0].Date)

			_, err = s.AddEntry("2023-12-10", "Second try")
			assert.ErrorIs(t, err, types.ErrDuplicateDate)
			list, err = s.ListEntries()
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "Met with team", list[0].Content)

			e, err = s.EditEntry("2023-12-10", "Updated notes")
			require.NoError(t, err)
			assert.Equal(t, "Updated notes", e.Content)

			e, err = s.ViewEntry("2023-12-10")
			require.NoError(t, err)
			assert.Equal(t, "Updated notes", e.Content)

			require.NoError(t, s.DeleteEntry("2023-12-10"))
			_, err = s.ViewEntry("2023-12-10")
			assert.ErrorIs(t, err, types.ErrNotFound)

			list, err = s.ListEntries()
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStoreMissingDataIsEmpty(t *testing.T) {
	s := NewStore(&memoryBackend{})

	list, err := s.ListEntries()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = s.ViewEntry("2023-12-10")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.EditEntry("2023-12-10", "x")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEntry("2023-12-10"), types.ErrNotFound)
}

func TestStoreAddOnMissingDataCreates(t *testing.T) {
	b := &memoryBackend{}
	s := NewStore(b)

	_, err := s.AddEntry("2023-12-10", "first")
	require.NoError(t, err)
	assert.Equal(t, types.Collection{{Date: "2023-12-10", Content: "first"}}, b.entries)
}

func TestStoreViewNeverSaves(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{{Date: "2023-12-10", Content: "Met with team"}}}
	s := NewStore(b)

	first, err := s.ViewEntry("2023-12-10")
	require.NoError(t, err)
	second, err := s.ViewEntry("2023-12-10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, b.saves)
	assert.Equal(t, types.Collection{{Date: "2023-12-10", Content: "Met with team"}}, b.entries)
}

func TestStoreListNeverSaves(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{
		{Date: "2023-12-12", Content: "c"},
		{Date: "2023-12-10", Content: "a"},
		{Date: "2023-12-11", Content: "b"},
	}}
	s := NewStore(b)

	list, err := s.ListEntries()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-12-10", "2023-12-11", "2023-12-12"}, dates(list))
	assert.Equal(t, 0, b.saves)
}

func TestStoreEditPreservesKey(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{
		{Date: "2023-12-10", Content: "a"},
		{Date: "2023-12-11", Content: "b"},
	}}
	s := NewStore(b)

	_, err := s.EditEntry("2023-12-10", "c2")
	require.NoError(t, err)

	var matches []types.Entry
	for _, e := range b.entries {
		if e.Date == "2023-12-10" {
			matches = append(matches, e)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "c2", matches[0].Content)
	assert.Len(t, b.entries, 2)
}

func TestStoreDeleteIsTotal(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{
		{Date: "2023-12-10", Content: "a"},
		{Date: "2023-12-11", Content: "b"},
		{Date: "2023-12-12", Content: "c"},
	}}
	s := NewStore(b)

	require.NoError(t, s.DeleteEntry("2023-12-11"))
	assert.Len(t, b.entries, 2)
	assert.Equal(t, -1, b.entries.Index("2023-12-11"))
}

func TestStoreRejectsInvalidInputWithoutTouchingBackend(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{{Date: "2023-12-10", Content: "a"}}}
	s := NewStore(b)

	_, err := s.AddEntry("2023-13-40", "x")
	assert.ErrorIs(t, err, types.ErrInvalidDate)
	_, err = s.AddEntry("2023-12-11", "   ")
	assert.ErrorIs(t, err, types.ErrInvalidContent)
	_, err = s.ViewEntry("12/10/2023")
	assert.ErrorIs(t, err, types.ErrInvalidDate)
	_, err = s.EditEntry("2023-12-10", "")
	assert.ErrorIs(t, err, types.ErrInvalidContent)
	assert.ErrorIs(t, s.DeleteEntry("2023-12"), types.ErrInvalidDate)

	assert.Equal(t, 0, b.loads)
	assert.Equal(t, 0, b.saves)
}

func TestStorePropagatesParseError(t *testing.T) {
	pe := &types.ParseError{Path: "journal_entries.json", Err: errors.New("bad")}
	b := &memoryBackend{loadErr: pe}
	s := NewStore(b)

	_, err := s.AddEntry("2023-12-10", "x")
	assert.ErrorAs(t, err, &pe)
	_, err = s.ListEntries()
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 0, b.saves, "corrupt data must never be overwritten")
}

func TestStoreCorruptFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonfile.FileName)
	require.NoError(t, os.WriteFile(path, []byte("not valid data"), 0o644))
	s := NewStore(jsonfile.NewBackend(path))

	_, err := s.AddEntry("2023-12-10", "Met with team")
	var pe *types.ParseError
	require.ErrorAs(t, err, &pe)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not valid data", string(data))
}

func TestStoreSaveFailure(t *testing.T) {
	b := &memoryBackend{
		entries: types.Collection{{Date: "2023-12-10", Content: "a"}},
		saveErr: errDiskFull,
	}
	s := NewStore(b)

	_, err := s.AddEntry("2023-12-11", "b")
	assert.ErrorIs(t, err, errDiskFull)
	_, err = s.EditEntry("2023-12-10", "b")
	assert.ErrorIs(t, err, errDiskFull)
	assert.ErrorIs(t, s.DeleteEntry("2023-12-10"), errDiskFull)

	assert.Equal(t, types.Collection{{Date: "2023-12-10", Content: "a"}}, b.entries)
}

func TestStoreHandlesDuplicatesInCorruptCollection(t *testing.T) {
	b := &memoryBackend{entries: types.Collection{
		{Date: "2023-12-10", Content: "first"},
		{Date: "2023-12-10", Content: "second"},
	}}
	s := NewStore(b)

	e, err := s.ViewEntry("2023-12-10")
	require.NoError(t, err)
	assert.Equal(t, "first", e.Content)

	require.NoError(t, s.DeleteEntry("2023-12-10"))
	assert.Equal(t, types.Collection{{Date: "2023-12-10", Content: "second"}}, b.entries)
}
