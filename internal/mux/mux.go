package mux

import (
	"net/http"
	"setgame-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests for spectators
type Mux struct {
	*gmux.Router
	version    string
	dealer     *room.Dealer
	spectators *room.Spectators
}

// NewMux returns a new HTTP mux
func NewMux(version string, dealer *room.Dealer, spectators *room.Spectators) *Mux {
	this := &Mux{
		Router:     gmux.NewRouter(),
		version:    version,
		dealer:     dealer,
		spectators: spectators,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
	})

	return this
}
