package secrets

import (
	"maps"
	"os"
)

// EnvLoader returns a Loader that reads the specified environment variables.
// Missing variables are silently omitted from the result map.
func EnvLoader(keys ...string) Loader {
	return func() (map[string]string, error) {
		vals := make(map[string]string, len(keys))
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				vals[k] = v
			}
		}
		return vals, nil
	}
}

// WithDefaults returns a Loader whose result starts from defaults and is
// overlaid by next.
func WithDefaults(defaults map[string]string, next Loader) Loader {
	return func() (map[string]string, error) {
		vals, err := next()
		if err != nil {
			return nil, err
		}
		out := maps.Clone(defaults)
		if out == nil {
			out = make(map[string]string, len(vals))
		}
		maps.Copy(out, vals)
		return out, nil
	}
}
