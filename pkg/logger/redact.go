package logger

import "strings"

// DefaultCensor replaces redacted values unless overridden.
const DefaultCensor = "[REDACTED]"

// maxRedactDepth bounds recursion into nested field maps.
const maxRedactDepth = 8

// defaultRedactKeys are field names censored at any depth unless
// RedactConfig.DisableDefaults is set. Matching is case-insensitive.
var defaultRedactKeys = []string{
	"password", "passwd", "pwd",
	"secret", "token", "api_key", "apikey",
	"access_token", "refresh_token",
	"authorization", "cookie",
	"ssn", "social_security",
	"credit_card", "creditcard",
	"private_key", "privatekey",
}

// redactor censors or removes sensitive fields before records reach the
// underlying engine. zerolog has no redaction facility of its own, so path
// matching lives in the wrapper.
type redactor struct {
	keys   map[string]struct{}
	paths  [][]string
	censor string
	remove bool
}

func newRedactor(cfg RedactConfig) *redactor {
	r := &redactor{
		keys:   make(map[string]struct{}),
		censor: cfg.Censor,
		remove: cfg.Remove,
	}
	if r.censor == "" {
		r.censor = DefaultCensor
	}

	if !cfg.DisableDefaults {
		for _, k := range defaultRedactKeys {
			r.keys[k] = struct{}{}
		}
	}

	for _, p := range cfg.Paths {
		segs := strings.Split(p, ".")
		if len(segs) == 1 {
			// Single-segment paths behave like the default keys: they
			// match at any depth.
			r.keys[strings.ToLower(segs[0])] = struct{}{}
			continue
		}
		for i, s := range segs {
			segs[i] = strings.ToLower(s)
		}
		r.paths = append(r.paths, segs)
	}

	return r
}

// apply returns a redacted copy of fields. The input map is never mutated.
func (r *redactor) apply(fields F) F {
	if fields == nil {
		return nil
	}
	return r.redactMap(fields, nil, 0)
}

func (r *redactor) redactMap(m F, prefix []string, depth int) F {
	out := make(F, len(m))
	for k, v := range m {
		path := append(append([]string(nil), prefix...), strings.ToLower(k))
		if r.matches(path) {
			if !r.remove {
				out[k] = r.censor
			}
			continue
		}
		if sub, ok := v.(F); ok && depth < maxRedactDepth {
			out[k] = r.redactMap(sub, path, depth+1)
			continue
		}
		out[k] = v
	}
	return out
}

// matches reports whether the current dotted path is redacted, either by a
// depth-independent key or an explicit path pattern ("*" matches one segment).
func (r *redactor) matches(path []string) bool {
	if _, ok := r.keys[path[len(path)-1]]; ok {
		return true
	}
	for _, pattern := range r.paths {
		if len(pattern) != len(path) {
			continue
		}
		matched := true
		for i, seg := range pattern {
			if seg != "*" && seg != path[i] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
