package routes

import (
	"net/http"

	"github.com/Dorschm/stellar-sub001/pkg/dispatcher"
)

// routes :
// Registers every route served by this server. All the routes
// are set up with their adequate handler but no actual binding
// to the listening socket is performed here.
func (s *Server) routes() {
	s.route("POST", "tick", s.tick())
	s.route("OPTIONS", "tick", dispatcher.NoOp(s.log))

	s.route("POST", "players/mark-inactive", s.markInactive())
	s.route("OPTIONS", "players/mark-inactive", dispatcher.NoOp(s.log))
}

// route :
// Performs the necessary wrapping around the specified handler
// so that it is only bound to the input method and protected
// against panics leaking to the client.
//
// The `method` indicates the method the handler is sensible to.
//
// The `name` of the route defines the binding to perform for
// the input handler.
//
// The `handler` serves incoming requests on that route.
func (s *Server) route(method string, name string, handler http.HandlerFunc) {
	s.router.HandleFunc(
		name,
		dispatcher.WithSafetyNet(s.log, handler),
	).Methods(method)
}
