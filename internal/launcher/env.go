package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
)

// BuildEnv composes the child environment per the flask CLI contract:
// project dotenv files first, then the debug/reload flags and the target
// application reference.
func BuildEnv(root string, debug bool, appRef string) []string {
	env := os.Environ()
	env = append(env, dotenvPairs(root)...)

	if debug {
		env = append(env, "FLASK_ENV=development", "FLASK_DEBUG=1")
	} else {
		env = append(env, "FLASK_ENV=production", "FLASK_DEBUG=0")
	}
	if appRef != "" {
		env = append(env, "FLASK_APP="+appRef)
	}
	return env
}

// dotenvPairs loads the project's .env and .flaskenv, if present. Missing or
// malformed files are silently skipped; keys are sorted for deterministic
// child environments.
func dotenvPairs(root string) []string {
	merged := make(map[string]string)
	for _, name := range []string{".env", ".flaskenv"} {
		values, err := godotenv.Read(filepath.Join(root, name))
		if err != nil {
			continue
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, merged[k]))
	}
	return pairs
}
