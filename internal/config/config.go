package config

import (
	"strings"

	"github.com/gitlive/gitlive/internal/z0"
)

// SecurityLevel gates which sources a configuration key may be read from.
type SecurityLevel int

const (
	// SecureStrict permits only environment variables. Nothing currently
	// uses this level, but the taxonomy is part of the contract.
	SecureStrict SecurityLevel = iota
	// SecureFlexible permits CLI flags and environment variables, never
	// the checked-in Z0 file: for values too sensitive to commit.
	SecureFlexible
	// All permits every source.
	All
)

// Reader merges configuration from three sources: CLI, environment,
// and a parsed Z0 tree, honoring each key's SecurityLevel and the
// fixed precedence CLI > ENV > Z0.
type Reader struct {
	cli map[string]string
	env map[string]string
	z0  z0.Reader
}

// New builds a Reader. cli maps already-parsed --name=value flags (see
// ParseCLIArgs) by their raw name; environ is an os.Environ()-shaped
// slice of "KEY=VALUE" strings; root is the parsed Z0 document (nil is
// treated as an empty document).
func New(cli map[string]string, environ []string, root *z0.Node) *Reader {
	normalizedCLI := make(map[string]string, len(cli))
	for k, v := range cli {
		normalizedCLI[z0.NormalizeKey(k)] = v
	}

	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}

	return &Reader{cli: normalizedCLI, env: env, z0: z0.NewReader(root)}
}

// ParseCLIArgs follows the CLI convention of equals-separated
// "--name=value" arguments, no space form. Arguments that don't match
// (bare flags, positional args) are ignored: the fixed flags the
// command itself parses take a different path entirely; this exists for
// the generic, future-key layer the config reader exposes.
func ParseCLIArgs(args []string) map[string]string {
	out := map[string]string{}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		body := arg[2:]
		eq := strings.IndexByte(body, '=')
		if eq < 0 {
			continue
		}
		out[body[:eq]] = body[eq+1:]
	}
	return out
}

// Get looks up key honoring level's source permissions and CLI > ENV > Z0
// precedence.
func (r *Reader) Get(key string, level SecurityLevel) (string, bool) {
	if level == SecureFlexible || level == All {
		if v, ok := r.cli[z0.NormalizeKey(key)]; ok {
			return v, true
		}
	}
	if v, ok := r.lookupEnv(key); ok {
		return v, true
	}
	if level == All {
		if v, ok := r.z0.Get(key).Node().Scalar(); ok {
			return v, true
		}
	}
	return "", false
}

// GetWithFallback behaves like Get, but also tries fallbackKey (at the
// same security level) when key is absent. Used for the url/public-url
// legacy alias.
func (r *Reader) GetWithFallback(key, fallbackKey string, level SecurityLevel) (string, bool) {
	if v, ok := r.Get(key, level); ok {
		return v, true
	}
	return r.Get(fallbackKey, level)
}

// lookupEnv checks GITLIVE_<NAME> first (with '-' mapped to '_' and
// uppercased), then falls back to a case/separator-insensitive scan of
// the whole environment.
func (r *Reader) lookupEnv(key string) (string, bool) {
	want := "GITLIVE_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if v, ok := r.env[want]; ok {
		return v, true
	}
	norm := z0.NormalizeKey(key)
	for name, val := range r.env {
		normName := z0.NormalizeKey(name)
		if normName == norm || strings.TrimPrefix(normName, "gitlive-") == norm {
			return val, true
		}
	}
	return "", false
}

// URL returns the configured LIVE URL, falling back to the legacy
// public-url key from old config files.
func (r *Reader) URL() (string, bool) {
	return r.GetWithFallback("url", "public-url", All)
}

// User returns the configured LIVE username.
func (r *Reader) User() (string, bool) {
	return r.Get("user", All)
}

// Password returns the configured LIVE password. It is never readable
// from the Z0 file, only CLI or environment.
func (r *Reader) Password() (string, bool) {
	return r.Get("password", SecureFlexible)
}

// Files returns the file-selection rule strings from the Z0 document's
// "files" array. This bypasses CLI/ENV entirely: file-selection rules
// are read directly from Z0.
func (r *Reader) Files() []string {
	elements := r.z0.Get("files").Array()
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		if v, ok := el.Node().Scalar(); ok {
			out = append(out, v)
		}
	}
	return out
}
