package mux

import "net/http"

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Spectators int    `json:"spectators"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:     "OK",
			Version:    m.version,
			Spectators: m.spectators.Count(),
		})
	}
}
