// Package serializer reads and writes JSON documents on disk
package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileMode is used for every file written by this package. Store files carry
// PIN hashes, so they are readable by the owner only.
const FileMode os.FileMode = 0600

// ErrMalformedJSON marks a file that was read but could not be decoded.
var ErrMalformedJSON = errors.New("malformed json")

// WriteJSONToFile marshals v and replaces filename with the result.
// The data goes to a temporary file in the same directory first, so readers
// never observe a half-written document.
func WriteJSONToFile(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal json: %w", err)
	}

	return writeFileAtomic(filename, data)
}

// ReadJSONFromFile unmarshals the content of filename into v.
// Failures to read the file are returned as is, so a missing file satisfies
// errors.Is(err, fs.ErrNotExist). Decoding failures wrap ErrMalformedJSON.
func ReadJSONFromFile(filename string, v any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedJSON, err)
	}
	return nil
}

func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// removal fails harmlessly once the rename succeeded
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		return err
	}

	return os.Rename(tmpName, filename)
}
