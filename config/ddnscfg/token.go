package ddnscfg

import (
	"fmt"
	"os"
	"strings"
)

// LoadToken reads the API token file. The returned loosePerms flag
// reports whether the file is readable by group or others; callers warn
// on it but proceed, since at-rest permissions are the setup tooling's
// contract. The token value itself must never be logged; log only its
// length or the verification outcome.
func LoadToken(path string) (token string, loosePerms bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("token file %s: %w", path, err)
	}
	loosePerms = info.Mode().Perm()&0o077 != 0

	data, err := os.ReadFile(path)
	if err != nil {
		return "", loosePerms, fmt.Errorf("token file %s: %w", path, err)
	}
	token = strings.TrimSpace(string(data))
	if token == "" {
		return "", loosePerms, fmt.Errorf("token file %s is empty", path)
	}
	return token, loosePerms, nil
}
