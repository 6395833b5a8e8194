// Package router adapts a single serverless invocation event into
// path/method based handler dispatch: templated routes are compiled into
// anchored matchers, captured path segments are coerced into typed
// arguments, per-route policy (methods, access token, CORS, compression,
// base64 encoding) is enforced, and the handler outcome is translated into
// a wire-level response envelope.
package router

import (
	"fmt"
	"regexp"
	"strings"
)

// PlaceholderType determines both the capture sub-pattern used while
// matching and the coercion applied to the captured text.
type PlaceholderType int

const (
	// TypeRaw is an untyped placeholder (<name>). It matches like a
	// string placeholder and passes the captured text through verbatim.
	TypeRaw PlaceholderType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeUUID
)

// String returns the template-level name of the type.
func (t PlaceholderType) String() string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeUUID:
		return "uuid"
	default:
		return fmt.Sprintf("PlaceholderType(%d)", int(t))
	}
}

// subPatterns maps each placeholder type to its capture sub-pattern.
// The float pattern requires a fractional part ("12.5" matches, "12"
// does not), matching upstream behavior.
var subPatterns = map[PlaceholderType]string{
	TypeRaw:    `([a-zA-Z0-9_]+)`,
	TypeString: `([a-zA-Z0-9_]+)`,
	TypeInt:    `([0-9]+)`,
	TypeFloat:  `([+-]?[0-9]+\.[0-9]+)`,
	TypeUUID:   `([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`,
}

var placeholderTypes = map[string]PlaceholderType{
	"string": TypeString,
	"int":    TypeInt,
	"float":  TypeFloat,
	"uuid":   TypeUUID,
}

// Placeholder is a named, typed capture slot within a path template.
// Declaration order within the template is the order arguments are
// passed to the handler.
type Placeholder struct {
	Name string
	Type PlaceholderType
}

// PathPattern is a compiled path template: an anchored full-string
// matcher plus the ordered placeholder list. Immutable once compiled.
type PathPattern struct {
	template     string
	regex        *regexp.Regexp
	placeholders []Placeholder
}

// CompilePattern compiles a path template into a PathPattern. Templates
// use two placeholder syntaxes: untyped <name> and typed <type:name>
// for type in {string, int, float, uuid}. Malformed placeholder syntax
// fails with *PatternError.
func CompilePattern(template string) (*PathPattern, error) {
	var expr strings.Builder
	expr.WriteString("^")

	var placeholders []Placeholder

	i := 0
	for i < len(template) {
		switch template[i] {
		case '<':
			end := strings.IndexByte(template[i:], '>')
			if end < 0 {
				return nil, &PatternError{Template: template, Reason: "unterminated placeholder"}
			}
			ph, sub, err := parsePlaceholder(template, template[i+1:i+end])
			if err != nil {
				return nil, err
			}
			expr.WriteString(sub)
			placeholders = append(placeholders, ph)
			i += end + 1
		case '>':
			return nil, &PatternError{Template: template, Reason: "unmatched '>'"}
		default:
			start := i
			for i < len(template) && template[i] != '<' && template[i] != '>' {
				i++
			}
			expr.WriteString(regexp.QuoteMeta(template[start:i]))
		}
	}
	expr.WriteString("$")

	regex, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, &PatternError{Template: template, Reason: err.Error()}
	}

	return &PathPattern{
		template:     template,
		regex:        regex,
		placeholders: placeholders,
	}, nil
}

// parsePlaceholder parses the text between '<' and '>' into a
// Placeholder and its capture sub-pattern.
func parsePlaceholder(template, token string) (Placeholder, string, error) {
	typeName, name, typed := strings.Cut(token, ":")
	if !typed {
		name = token
		if !isIdent(name) {
			return Placeholder{}, "", &PatternError{Template: template, Reason: fmt.Sprintf("invalid placeholder %q", token)}
		}
		return Placeholder{Name: name, Type: TypeRaw}, subPatterns[TypeRaw], nil
	}

	phType, ok := placeholderTypes[typeName]
	if !ok {
		return Placeholder{}, "", &PatternError{Template: template, Reason: fmt.Sprintf("unknown placeholder type %q", typeName)}
	}
	if !isIdent(name) {
		return Placeholder{}, "", &PatternError{Template: template, Reason: fmt.Sprintf("invalid placeholder name %q", name)}
	}
	return Placeholder{Name: name, Type: phType}, subPatterns[phType], nil
}

// isIdent reports whether s is a non-empty run of alphanumerics or
// underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return false
	}
	return true
}

// Template returns the source template string.
func (p *PathPattern) Template() string {
	return p.template
}

// Placeholders returns the placeholders in declaration order.
func (p *PathPattern) Placeholders() []Placeholder {
	return p.placeholders
}

// Match reports whether path fully matches the compiled template.
func (p *PathPattern) Match(path string) bool {
	return p.regex.MatchString(path)
}

// captures returns the captured placeholder substrings for path, or nil
// if path does not match.
func (p *PathPattern) captures(path string) []string {
	m := p.regex.FindStringSubmatch(path)
	if m == nil {
		return nil
	}
	return m[1:]
}
