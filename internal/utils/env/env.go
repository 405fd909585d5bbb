// Package env builds the environment programs are run with.
package env

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/janosik-bot/janosik/internal/model"
)

var envKeyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSpecs parses KEY=VALUE specs. A bare KEY takes its value from the
// current process environment and fails when it is not set.
func ParseSpecs(specs []string) (map[string]string, error) {
	env := make(map[string]string, len(specs))

	for _, spec := range specs {
		key, value, hasValue := strings.Cut(spec, "=")
		if !envKeyRegexp.MatchString(key) {
			return nil, fmt.Errorf("invalid environment variable key %q: %w", key, model.ErrNotValid)
		}

		if !hasValue {
			v, ok := os.LookupEnv(key)
			if !ok {
				return nil, fmt.Errorf("environment variable %q is not set: %w", key, model.ErrNotValid)
			}
			value = v
		}

		env[key] = value
	}

	return env, nil
}

// Merge returns base with override applied on top. The result is nil only
// when both are nil, so an explicitly empty environment stays empty.
func Merge(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	merged := make(map[string]string, len(base)+len(override))
	maps.Copy(merged, base)
	maps.Copy(merged, override)
	return merged
}

// Environ returns env as sorted KEY=VALUE entries, ready for exec.Cmd.Env.
// It never returns nil, an empty map means an empty environment.
func Environ(env map[string]string) []string {
	keys := slices.Sorted(maps.Keys(env))
	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+env[k])
	}
	return entries
}
