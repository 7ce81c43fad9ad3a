package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

// handleLeaveRoom — explicit exit; the connection itself stays up and
// may immediately find a new match.
func (ctl *MatchWSController) handleLeaveRoom(cid domain.ConnID, data []byte) {
	type leavePayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave-room payload")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(cid)).Str("room", p.Room).Msg("leave")
	if err := ctl.Orch.Leave(domain.SessionID(p.Room), cid); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("leave-room dropped")
	}
}
