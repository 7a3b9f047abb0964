// Package raw reads bootstrap settings before the logger exists. It must not
// import the logger.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is an environment prefix such as "LOG_"
type Env string

func (e Env) get(key string) string { return strings.TrimSpace(os.Getenv(string(e) + key)) }

// String returns the value or def when unset
func (e Env) String(key, def string) string {
	if v := e.get(key); v != "" {
		return v
	}
	return def
}

// Bool accepts strconv.ParseBool spellings plus yes/no
func (e Env) Bool(key string, def bool) bool {
	switch v := strings.ToLower(e.get(key)); v {
	case "":
		return def
	case "yes", "y", "on":
		return true
	case "no", "n", "off":
		return false
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
}

// Int returns a non-negative integer or def
func (e Env) Int(key string, def int) int {
	n, err := strconv.Atoi(e.get(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
