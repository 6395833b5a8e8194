// Package handlers provides the sample application served by both
// entrypoints. The handlers exercise every routing feature: typed path
// placeholders, query parameters, POST bodies, the token gate, CORS,
// compression and binary base64 encoding.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"lambda-router/pkg/router"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// pngPixel is a 1x1 PNG used by the binary routes.
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// Handlers bundles the sample route handlers.
type Handlers struct {
	log      *logrus.Logger
	validate *validator.Validate
}

// New creates the sample handlers.
func New(log *logrus.Logger) *Handlers {
	return &Handlers{
		log:      log,
		validate: validator.New(),
	}
}

// Root serves a plain-text liveness response.
func (h *Handlers) Root(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	return &router.Outcome{Status: router.StatusOK, ContentType: "text/plain", Body: []byte("Yo")}, nil
}

// Add echoes the POST body back; on GET the body parameter is absent
// and the response is empty.
func (h *Handlers) Add(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	body, _ := params["body"].([]byte)
	return &router.Outcome{Status: router.StatusOK, ContentType: "text/plain", Body: body}, nil
}

// User greets a user captured from the path.
func (h *Handlers) User(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	user := args[0].(string)
	return &router.Outcome{Status: router.StatusOK, ContentType: "text/plain", Body: []byte(user)}, nil
}

// UserNum formats a string and an int placeholder, demonstrating typed
// positional arguments.
func (h *Handlers) UserNum(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	user := args[0].(string)
	num := args[1].(int)
	return &router.Outcome{
		Status:      router.StatusOK,
		ContentType: "text/plain",
		Body:        []byte(fmt.Sprintf("%s-%d", user, num)),
	}, nil
}

// JSON serves a small JSON document.
func (h *Handlers) JSON(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	body, err := json.Marshal(map[string]string{"app": "it works"})
	if err != nil {
		return nil, err
	}
	return &router.Outcome{Status: router.StatusOK, ContentType: "application/json", Body: body}, nil
}

// Binary serves the sample PNG.
func (h *Handlers) Binary(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	return &router.Outcome{Status: router.StatusOK, ContentType: "image/png", Body: pngPixel}, nil
}

// Secure is gated behind the access token; reaching it proves the gate
// passed.
func (h *Handlers) Secure(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	body, err := json.Marshal(map[string]string{"access": "granted"})
	if err != nil {
		return nil, err
	}
	return &router.Outcome{Status: router.StatusOK, ContentType: "application/json", Body: body}, nil
}

// noteRequest is the payload accepted by CreateNote.
type noteRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Priority int    `json:"priority" validate:"gte=0,lte=9"`
}

// noteResponse is the payload returned by CreateNote.
type noteResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

// CreateNote accepts a JSON note, validates it and returns it with a
// generated id. It demonstrates POST body handling and payload
// validation.
func (h *Handlers) CreateNote(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
	body, _ := params["body"].([]byte)
	if len(body) == 0 {
		return &router.Outcome{
			Status:      router.StatusNOK,
			ContentType: "application/json",
			Body:        []byte(`{"errorMessage": "Missing request body"}`),
		}, nil
	}

	var note noteRequest
	if err := json.Unmarshal(body, &note); err != nil {
		return &router.Outcome{
			Status:      router.StatusNOK,
			ContentType: "application/json",
			Body:        []byte(`{"errorMessage": "Invalid JSON body"}`),
		}, nil
	}
	if err := h.validate.Struct(&note); err != nil {
		h.log.WithField("error", err.Error()).Debug("Note validation failed")
		payload, _ := json.Marshal(map[string]string{"errorMessage": err.Error()})
		return &router.Outcome{Status: router.StatusNOK, ContentType: "application/json", Body: payload}, nil
	}

	resp, err := json.Marshal(noteResponse{
		ID:       uuid.New().String(),
		Title:    note.Title,
		Priority: note.Priority,
	})
	if err != nil {
		return nil, err
	}
	return &router.Outcome{Status: router.StatusOK, ContentType: "application/json", Body: resp}, nil
}
