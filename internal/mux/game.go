package mux

import (
	"net/http"
	"setgame-server/pkg/room"
	"time"
)

type playerResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Score  int    `json:"score"`
	State  string `json:"state"`
	Claims []int  `json:"claims"`
}

type gameResponse struct {
	UUID     string           `json:"uuid"`
	Deadline time.Time        `json:"deadline"`
	Players  []playerResponse `json:"players"`
	Table    room.Snapshot    `json:"table"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players := m.dealer.Players()
		resp := gameResponse{
			UUID:     m.dealer.UUID,
			Deadline: m.dealer.Deadline(),
			Players:  make([]playerResponse, len(players)),
			Table:    m.spectators.Snapshot(),
		}

		for i, p := range players {
			resp.Players[i] = playerResponse{
				ID:     p.ID,
				Name:   p.Name,
				Human:  p.Human,
				Score:  p.Score(),
				State:  p.State().String(),
				Claims: p.Claims(),
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
