package transcript

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/chats/_chat.txt", []byte("héllo\nwörld\n"), 0o644))

	text, err := Load(fs, "/chats/_chat.txt")
	require.NoError(t, err)
	require.Equal(t, "héllo\nwörld\n", text)
}

func TestLoad_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", nil, 0o644))

	text, err := Load(fs, "/empty.txt")
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.txt")
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), "/nope.txt")
}

func TestLoad_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/chats", 0o755))

	_, err := Load(fs, "/chats")
	require.ErrorIs(t, err, ErrIsDirectory)
}

func TestLoad_InvalidUTF8(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.txt", []byte{'o', 'k', 0xff, 0xfe}, 0o644))

	_, err := Load(fs, "/bad.txt")
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.Contains(t, err.Error(), "/bad.txt")
}

func TestLoad_OsFs(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/chat.txt"
	require.NoError(t, os.WriteFile(path, []byte("plain"), 0o644))

	text, err := Load(afero.NewOsFs(), path)
	require.NoError(t, err)
	require.Equal(t, "plain", text)
}
