package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotenv reads KEY=VALUE files into the process env without overriding
// variables that are already set; missing files are skipped
// it returns the files that were applied
func LoadDotenv(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
