package handlers

import "lambda-router/pkg/router"

// RegisterRoutes registers the sample application's routes on table.
// Registration errors are fatal to startup and must stop the caller
// from serving.
func RegisterRoutes(table *router.RouteTable, h *Handlers) error {
	routes := []struct {
		template string
		handler  router.HandlerFunc
		opts     *router.RouteOptions
	}{
		{"/", h.Root, &router.RouteOptions{CORS: true, Name: "root"}},
		{"/add", h.Add, &router.RouteOptions{Methods: []string{"GET", "POST"}, CORS: true, Name: "add"}},
		{"/json", h.JSON, &router.RouteOptions{CORS: true, Name: "json"}},
		{"/notes", h.CreateNote, &router.RouteOptions{Methods: []string{"POST"}, CORS: true, Name: "create-note"}},
		{"/secure", h.Secure, &router.RouteOptions{Token: true, Name: "secure"}},
		{"/binary", h.Binary, &router.RouteOptions{CORS: true, Compression: "gzip", Name: "binary"}},
		{"/b64binary", h.Binary, &router.RouteOptions{CORS: true, Compression: "gzip", BinaryB64Encode: true, Name: "b64binary"}},
		{"/users/<string:user>", h.User, &router.RouteOptions{CORS: true, Name: "user"}},
		{"/users/<string:user>/<int:num>", h.UserNum, &router.RouteOptions{CORS: true, Name: "user-num"}},
	}

	for _, r := range routes {
		if err := table.Register(r.template, r.handler, r.opts); err != nil {
			return err
		}
	}
	return nil
}
