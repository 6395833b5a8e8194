package router

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Status is the semantic status tag a handler returns; the response
// builder maps it onto a numeric HTTP code.
type Status string

const (
	StatusOK       Status = "OK"
	StatusEmpty    Status = "EMPTY"
	StatusNOK      Status = "NOK"
	StatusFound    Status = "FOUND"
	StatusNotFound Status = "NOT_FOUND"
	StatusConflict Status = "CONFLICT"
	StatusError    Status = "ERROR"
)

// statusCodes is the fixed tag-to-code table.
var statusCodes = map[Status]int{
	StatusOK:       200,
	StatusEmpty:    204,
	StatusNOK:      400,
	StatusFound:    302,
	StatusNotFound: 404,
	StatusConflict: 409,
	StatusError:    500,
}

// Outcome is a handler's semantic result before envelope construction.
type Outcome struct {
	Status      Status
	ContentType string
	Body        []byte
}

// Envelope is the wire-level response record handed back to the
// hosting runtime. It is the sole externally observable output of a
// dispatch.
type Envelope struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            []byte            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Policy carries the per-route flags the response builder applies.
type Policy struct {
	CORS            bool
	Methods         []string
	Compression     string
	BinaryB64Encode bool
}

const contentTypeJSON = "application/json"

// contentTypeZip is never compressed: zip archives already carry their
// own compression and clients expect the raw bytes.
const contentTypeZip = "application/zip"

// binaryTypes is the allowlist of content types eligible for base64
// body encoding.
var binaryTypes = map[string]bool{
	"application/octet-stream": true,
	"application/x-tar":        true,
	"application/zip":          true,
	"image/png":                true,
	"image/jpeg":               true,
	"image/tiff":               true,
	"image/webp":               true,
}

// BuildResponse maps a semantic outcome and route policy onto the wire
// envelope. It always produces a well-formed envelope; an unknown
// status tag maps to 500.
func BuildResponse(status Status, contentType string, body []byte, policy Policy) *Envelope {
	code, ok := statusCodes[status]
	if !ok {
		code = statusCodes[StatusError]
	}

	headers := map[string]string{"Content-Type": contentType}

	if policy.CORS {
		headers["Access-Control-Allow-Origin"] = "*"
		headers["Access-Control-Allow-Methods"] = strings.Join(policy.Methods, ",")
		headers["Access-Control-Allow-Credentials"] = "true"
	}

	if policy.Compression != "" && contentType != contentTypeZip {
		body = gzipBytes(body)
		headers["Content-Encoding"] = "gzip"
	}

	encoded := false
	if binaryTypes[contentType] && policy.BinaryB64Encode {
		b64 := make([]byte, base64.StdEncoding.EncodedLen(len(body)))
		base64.StdEncoding.Encode(b64, body)
		body = b64
		encoded = true
	}

	return &Envelope{
		StatusCode:      code,
		Headers:         headers,
		Body:            body,
		IsBase64Encoded: encoded,
	}
}

// gzipBytes compresses b in memory. Writes to a bytes.Buffer cannot
// fail, so the error paths are unreachable.
func gzipBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

// errorBody renders the standard {"errorMessage": ...} payload.
func errorBody(message string) []byte {
	body, _ := json.Marshal(map[string]string{"errorMessage": message})
	return body
}

// messageBody renders the {"message": ...} payload used by the token
// gate.
func messageBody(message string) []byte {
	body, _ := json.Marshal(map[string]string{"message": message})
	return body
}
