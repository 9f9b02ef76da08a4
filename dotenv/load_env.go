package dotenv

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// LoadEnv loads environment variables from the given files, ".env" when none
// is given. A missing default ".env" is not an error.
func LoadEnv(envPath ...string) error {
	optional := len(envPath) == 0
	if optional {
		envPath = append(envPath, ".env")
	}

	for _, filename := range envPath {
		content, err := os.ReadFile(filename)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}

		if err := LoadEnvFromString(string(content)); err != nil {
			return err
		}
	}

	return nil
}

func LoadEnvFromString(env string) error {
	lines := strings.Split(env, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		// skip blanks and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)

		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}
