package dotenv

import "strings"

// MaxNameLength caps placeholder names; longer names are truncated before lookup.
const MaxNameLength = 255

// Lookuper is the read side of a store that placeholders resolve against.
type Lookuper interface {
	Lookup(key string) (string, bool)
}

// LookupFunc adapts a plain function to Lookuper.
type LookupFunc func(key string) (string, bool)

func (f LookupFunc) Lookup(key string) (string, bool) { return f(key) }

// Resolver expands `${NAME}` placeholders in a single forward pass.
// Substituted text is emitted as-is and never scanned again.
type Resolver struct {
	// KeepUnterminated emits a `${` with no closing `}` literally, together
	// with the rest of the value. When false the tail from the marker on is
	// dropped, matching existing .env files written for that behavior.
	KeepUnterminated bool
}

// Resolve replaces each `${NAME}` in value with the current value of NAME in
// src, or with "" when NAME is absent.
func (r Resolver) Resolve(value string, src Lookuper) string {
	if !strings.Contains(value, "${") {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))
	rest := value
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:i])
		rest = rest[i:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			if r.KeepUnterminated {
				sb.WriteString(rest)
			}
			break
		}
		name := rest[2:end]
		if len(name) > MaxNameLength {
			name = name[:MaxNameLength]
		}
		if v, ok := src.Lookup(name); ok {
			sb.WriteString(v)
		}
		rest = rest[end+1:]
	}
	return sb.String()
}

// Resolve expands placeholders with the default, tail-dropping policy.
func Resolve(value string, src Lookuper) string {
	return Resolver{}.Resolve(value, src)
}
