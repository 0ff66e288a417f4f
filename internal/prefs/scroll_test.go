package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	v, err := LoadView()
	require.NoError(t, err)
	require.Empty(t, v.Scroll)

	require.NoError(t, SaveView(View{Scroll: map[string]int{"a": 3}, Column: "a"}))
	_, err = os.Stat(filepath.Join(dir, "dragboard", viewFile+".tmp"))
	require.True(t, os.IsNotExist(err))

	v, err = LoadView()
	require.NoError(t, err)
	require.Equal(t, 3, v.Scroll["a"])
	require.Equal(t, "a", v.Column)
}

func TestLoadViewRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dragboard"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dragboard", viewFile), []byte("{"), 0o600))

	v, err := LoadView()
	require.Error(t, err)
	require.NotNil(t, v.Scroll)
}
