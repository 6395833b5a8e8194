package router

// HandlerFunc is the contract implemented by route handlers. Positional
// arguments arrive in placeholder declaration order, already coerced to
// their placeholder types (string, int or float64). Named parameters
// carry the remaining query parameters as strings; on POST the raw
// request body is injected under the "body" key as []byte. A handler
// reports failure by returning an error (or panicking); the dispatcher
// converts either into a 500-mapped response.
type HandlerFunc func(args []interface{}, params map[string]interface{}) (*Outcome, error)

// RouteOptions carries the per-route policy supplied at registration.
// The zero value means: GET only, no CORS, no token gate, no
// compression, no base64 encoding.
type RouteOptions struct {
	// Methods is the allowed HTTP method set. Empty defaults to GET.
	Methods []string `validate:"omitempty,dive,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`

	// CORS enables the Access-Control-Allow-* response headers.
	CORS bool

	// Token gates the route behind the access_token query parameter.
	Token bool

	// Compression is the response encoding applied when the client
	// advertises it in Accept-Encoding. Only "gzip" is supported.
	Compression string `validate:"omitempty,oneof=gzip"`

	// BinaryB64Encode base64-encodes bodies of binary content types.
	BinaryB64Encode bool

	// Name identifies the route in logs. Defaults to the template.
	Name string
}

// RouteEntry is one registered route: a compiled template, its handler
// and its policy. Entries are created by RouteTable.Register and are
// immutable thereafter.
type RouteEntry struct {
	Template        string
	Name            string
	Handler         HandlerFunc
	Methods         []string
	Token           bool
	CORS            bool
	Compression     string
	BinaryB64Encode bool

	pattern *PathPattern
}

// Pattern returns the compiled path pattern.
func (e *RouteEntry) Pattern() *PathPattern {
	return e.pattern
}

// allowsMethod reports whether method is in the route's allowed set.
func (e *RouteEntry) allowsMethod(method string) bool {
	for _, m := range e.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Arguments produces the ordered positional arguments for path by
// coercing each captured segment per its placeholder type. Int segments
// are parsed with strconv (never evaluated), float segments with
// ParseFloat; string, uuid and untyped segments pass through verbatim.
func (e *RouteEntry) Arguments(path string) ([]interface{}, error) {
	captured := e.pattern.captures(path)
	if captured == nil {
		return nil, errNoMatch
	}

	args := make([]interface{}, 0, len(captured))
	for i, ph := range e.pattern.placeholders {
		value, err := coerce(captured[i], ph)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}
