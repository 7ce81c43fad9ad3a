package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

func (ctl *MatchWSController) handleSendMessage(cid domain.ConnID, data []byte) {
	type messagePayload struct {
		Type    string          `json:"type"`
		Room    string          `json:"room"`
		Message json.RawMessage `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad send-message payload")
		return
	}
	if len(p.Message) == 0 {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("send-message without message")
		return
	}

	// UnknownSession and NotAMember are dropped on purpose: the sender
	// learns nothing and the frame goes nowhere.
	if err := ctl.Orch.RelayMessage(domain.SessionID(p.Room), cid, p.Message); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("send-message dropped")
	}
}
