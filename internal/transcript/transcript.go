package transcript

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/afero"
)

var (
	ErrInvalidUTF8 = errors.New("not valid UTF-8")
	ErrIsDirectory = errors.New("is a directory")
)

// Load reads the whole transcript at path. The file is closed before Load
// returns.
func Load(fs afero.Fs, path string) (string, error) {
	data, err := read(fs, path)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read transcript %s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

func read(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}

	return io.ReadAll(f)
}
