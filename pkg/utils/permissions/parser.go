// Package permissions parses the file mode applied to written artifacts
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultArtifactPerms is read/write for owner, read for everyone else.
const DefaultArtifactPerms = 0o644

// ParseFileMode parses an octal permission string into an os.FileMode.
// Handles formats like "644", "0644", "0o644"; empty input yields the default.
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultArtifactPerms, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if val > 0o777 {
		return 0, fmt.Errorf("invalid file mode %q: only permission bits are allowed", s)
	}
	if val&0o600 != 0o600 {
		return 0, fmt.Errorf("invalid file mode %q: owner must be able to read and write", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm os.FileMode) string {
	return fmt.Sprintf("0%o", perm.Perm())
}
