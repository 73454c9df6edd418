// Package artifact writes rendered coverage maps to disk exactly once.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/provide-io/covmap/pkg/utils/permissions"
)

// DefaultFileMode is applied to artifacts when no mode is given.
const DefaultFileMode os.FileMode = permissions.DefaultArtifactPerms

// Write stores data at path atomically: it is written to a temporary file in
// the same directory and renamed into place. It returns the SHA-256 of data.
func Write(path string, data []byte, perm os.FileMode) (string, error) {
	if perm == 0 {
		perm = DefaultFileMode
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return "", fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", filepath.Base(path), err)
	}
	committed = true

	return Checksum(data), nil
}

// Checksum returns the hex SHA-256 of data, as recorded in sidecars.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
