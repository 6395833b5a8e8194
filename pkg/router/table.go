package router

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// defaultMethods is the method set used when registration supplies none.
var defaultMethods = []string{"GET"}

// RouteTable holds the registered routes. Resolution scans entries in
// registration order and the first full match wins, so resolution is
// deterministic even when templates overlap. The table is built once at
// startup and must not be mutated after dispatching begins; under that
// discipline concurrent dispatches may share one table without locking.
type RouteTable struct {
	entries    []*RouteEntry
	byTemplate map[string]*RouteEntry
	validate   *validator.Validate
	log        *logrus.Logger
}

// NewRouteTable creates an empty route table. A nil logger suppresses
// registration warnings.
func NewRouteTable(log *logrus.Logger) *RouteTable {
	if log == nil {
		log = discardLogger()
	}
	return &RouteTable{
		byTemplate: make(map[string]*RouteEntry),
		validate:   validator.New(),
		log:        log,
	}
}

// Register compiles template and adds a route for it. It fails with
// *PatternError on a malformed template, *DuplicateRouteError when the
// template string is already registered, and a validation error when
// opts carries an unknown method or compression encoding. Registration
// errors are fatal: a table that failed a registration must not serve
// requests.
func (t *RouteTable) Register(template string, handler HandlerFunc, opts *RouteOptions) error {
	if handler == nil {
		return fmt.Errorf("route %q: nil handler", template)
	}
	if opts == nil {
		opts = &RouteOptions{}
	}
	if err := t.validate.Struct(opts); err != nil {
		return fmt.Errorf("route %q: invalid options: %w", template, err)
	}

	if _, exists := t.byTemplate[template]; exists {
		return &DuplicateRouteError{Template: template}
	}

	pattern, err := CompilePattern(template)
	if err != nil {
		return err
	}

	methods := opts.Methods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	name := opts.Name
	if name == "" {
		name = template
	}

	entry := &RouteEntry{
		Template:        template,
		Name:            name,
		Handler:         handler,
		Methods:         methods,
		Token:           opts.Token,
		CORS:            opts.CORS,
		Compression:     opts.Compression,
		BinaryB64Encode: opts.BinaryB64Encode,
		pattern:         pattern,
	}

	t.warnOverlaps(entry)

	t.entries = append(t.entries, entry)
	t.byTemplate[template] = entry
	return nil
}

// Resolve returns the first registered route whose pattern fully
// matches path. First-registered-wins is the documented tie-break for
// overlapping templates.
func (t *RouteTable) Resolve(path string) (*RouteEntry, bool) {
	for _, entry := range t.entries {
		if entry.pattern.Match(path) {
			return entry, true
		}
	}
	return nil, false
}

// Routes returns the registered routes in registration order.
func (t *RouteTable) Routes() []*RouteEntry {
	routes := make([]*RouteEntry, len(t.entries))
	copy(routes, t.entries)
	return routes
}

// Len returns the number of registered routes.
func (t *RouteTable) Len() int {
	return len(t.entries)
}

// warnOverlaps logs a configuration warning when a new template can
// match the same concrete paths as an already registered one. Two
// templates that both match a path are a configuration hazard, not an
// error: the earlier registration wins.
func (t *RouteTable) warnOverlaps(entry *RouteEntry) {
	for _, existing := range t.entries {
		if templatesOverlap(existing.Template, entry.Template) {
			t.log.WithFields(logrus.Fields{
				"template":   entry.Template,
				"overlaps":   existing.Template,
				"resolution": "first registered wins",
			}).Warn("Overlapping route templates")
		}
	}
}

// templatesOverlap reports whether some concrete path can satisfy both
// templates. The check is segment-wise and conservative: segments that
// mix literal text with placeholders are assumed to overlap.
func templatesOverlap(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !segmentsOverlap(as[i], bs[i]) {
			return false
		}
	}
	return true
}

func segmentsOverlap(a, b string) bool {
	aType, aPlain := segmentPlaceholder(a)
	bType, bPlain := segmentPlaceholder(b)

	switch {
	case aPlain && bPlain:
		return a == b
	case aPlain:
		return literalMatchesSegment(a, b)
	case bPlain:
		return literalMatchesSegment(b, a)
	case aType >= 0 && bType >= 0:
		return typesIntersect(PlaceholderType(aType), PlaceholderType(bType))
	default:
		// At least one side mixes literals and placeholders.
		return true
	}
}

// segmentPlaceholder classifies a template segment. It returns the
// placeholder type when the segment is exactly one placeholder, -1
// otherwise; plain is true when the segment has no placeholder at all.
func segmentPlaceholder(seg string) (phType int, plain bool) {
	if !strings.Contains(seg, "<") && !strings.Contains(seg, ">") {
		return -1, true
	}
	if !strings.HasPrefix(seg, "<") || !strings.HasSuffix(seg, ">") || strings.Count(seg, "<") != 1 {
		return -1, false
	}
	p, err := CompilePattern(seg)
	if err != nil || len(p.placeholders) != 1 {
		return -1, false
	}
	return int(p.placeholders[0].Type), false
}

// literalMatchesSegment reports whether a literal segment is accepted
// by a placeholder-bearing segment's pattern.
func literalMatchesSegment(literal, seg string) bool {
	p, err := CompilePattern(seg)
	if err != nil {
		return false
	}
	return p.Match(literal)
}

// typesIntersect reports whether two placeholder capture languages
// share any string. Raw and string are the same language and accept
// every int capture; float requires a '.', uuid requires '-', so both
// are disjoint from everything but themselves.
func typesIntersect(a, b PlaceholderType) bool {
	stringish := func(t PlaceholderType) bool { return t == TypeRaw || t == TypeString }
	if stringish(a) && stringish(b) || a == b {
		return true
	}
	if stringish(a) && b == TypeInt || stringish(b) && a == TypeInt {
		return true
	}
	return false
}
