package router

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Request is the normalized view of one inbound invocation event.
// Constructed once per dispatch and discarded afterwards.
type Request struct {
	Path        string
	Method      string
	Headers     map[string]string
	QueryParams map[string]string
	Body        []byte
}

// TokenFunc supplies the secret the access_token query parameter is
// checked against. It is consulted on every gated request, never
// cached.
type TokenFunc func() string

// Config is the caller-supplied dispatcher configuration. Zero values
// select a discarding logger and the TOKEN environment variable.
type Config struct {
	Logger *logrus.Logger
	Token  TokenFunc
}

// Dispatcher runs the per-request policy state machine: path presence,
// route resolution, token gate, method check, argument assembly,
// handler invocation and response assembly. Each terminal failure maps
// deterministically to one response; no failure escapes Dispatch.
type Dispatcher struct {
	table *RouteTable
	log   *logrus.Logger
	token TokenFunc
}

// New creates a dispatcher over a fully registered route table.
func New(table *RouteTable, cfg Config) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}
	token := cfg.Token
	if token == nil {
		token = envToken
	}
	return &Dispatcher{table: table, log: log, token: token}
}

// envToken reads the shared secret from the process environment on
// every call.
func envToken() string {
	return os.Getenv("TOKEN")
}

// discardLogger returns a logger that drops everything.
func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Dispatch processes one request into one response envelope.
func (d *Dispatcher) Dispatch(req *Request) *Envelope {
	d.log.WithFields(logrus.Fields{
		"path":    req.Path,
		"method":  req.Method,
		"headers": req.Headers,
		"query":   req.QueryParams,
	}).Debug("Dispatching request")

	if req.Path == "" {
		return BuildResponse(StatusNOK, contentTypeJSON, errorBody("Missing route parameter"), Policy{})
	}

	entry, ok := d.table.Resolve(req.Path)
	if !ok {
		return BuildResponse(StatusNOK, contentTypeJSON, errorBody("No view function for: "+req.Path), Policy{})
	}

	if entry.Token && !d.validToken(req.QueryParams["access_token"]) {
		return BuildResponse(StatusError, contentTypeJSON, messageBody("Invalid access token"), Policy{})
	}

	if !entry.allowsMethod(req.Method) {
		return BuildResponse(StatusNOK, contentTypeJSON, errorBody("Unsupported method: "+req.Method), Policy{})
	}

	// The token must never reach the handler.
	params := make(map[string]interface{}, len(req.QueryParams)+1)
	for k, v := range req.QueryParams {
		if k == "access_token" {
			continue
		}
		params[k] = v
	}
	if req.Method == "POST" {
		params["body"] = req.Body
	}

	outcome, err := d.run(entry, req.Path, params)
	if err != nil {
		d.log.Error(err.Error())
		outcome = &Outcome{Status: StatusError, ContentType: contentTypeJSON, Body: errorBody(err.Error())}
	}

	compression := ""
	if entry.Compression != "" && acceptsEncoding(req.Headers, entry.Compression) {
		compression = entry.Compression
	}

	return BuildResponse(outcome.Status, outcome.ContentType, outcome.Body, Policy{
		CORS:            entry.CORS,
		Methods:         entry.Methods,
		Compression:     compression,
		BinaryB64Encode: entry.BinaryB64Encode,
	})
}

// run assembles the positional arguments and invokes the handler inside
// a failure boundary. Argument conversion failures and handler panics
// surface as ordinary errors.
func (d *Dispatcher) run(entry *RouteEntry, path string, params map[string]interface{}) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	args, err := entry.Arguments(path)
	if err != nil {
		return nil, err
	}

	outcome, err = entry.Handler(args, params)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, fmt.Errorf("handler for %q returned no outcome", entry.Name)
	}
	return outcome, nil
}

// validToken checks the supplied access_token against the configured
// secret. Both must be non-empty and equal.
func (d *Dispatcher) validToken(token string) bool {
	secret := d.token()
	if token == "" || secret == "" {
		return false
	}
	return token == secret
}

// acceptsEncoding reports whether encoding appears as a token in the
// request's Accept-Encoding header. Header name lookup is
// case-insensitive; quality parameters are ignored.
func acceptsEncoding(headers map[string]string, encoding string) bool {
	value := ""
	for name, v := range headers {
		if strings.EqualFold(name, "Accept-Encoding") {
			value = v
			break
		}
	}
	for _, part := range strings.Split(value, ",") {
		token, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(token) == encoding {
			return true
		}
	}
	return false
}
