package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

// WebRTC negotiation events. The payloads (SDP blobs, ICE candidates)
// are relayed verbatim between the two peers; this server never parses
// them and holds no PeerConnection of its own.

func (ctl *MatchWSController) handleReadyForVideo(cid domain.ConnID, data []byte) {
	type readyPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	var p readyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad ready-for-video payload")
		return
	}
	if err := ctl.Orch.ReadyForVideo(domain.SessionID(p.Room), cid); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("ready-for-video dropped")
	}
}

func (ctl *MatchWSController) handleOffer(cid domain.ConnID, data []byte) {
	type offerPayload struct {
		Type  string          `json:"type"`
		Room  string          `json:"room"`
		Offer json.RawMessage `json:"offer"`
	}
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	if err := ctl.Orch.RelayOffer(domain.SessionID(p.Room), cid, p.Offer); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("offer dropped")
	}
}

func (ctl *MatchWSController) handleAnswer(cid domain.ConnID, data []byte) {
	type answerPayload struct {
		Type   string          `json:"type"`
		Room   string          `json:"room"`
		Answer json.RawMessage `json:"answer"`
	}
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	if err := ctl.Orch.RelayAnswer(domain.SessionID(p.Room), cid, p.Answer); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("answer dropped")
	}
}

func (ctl *MatchWSController) handleCandidate(cid domain.ConnID, data []byte) {
	type candidatePayload struct {
		Type      string          `json:"type"`
		Room      string          `json:"room"`
		Candidate json.RawMessage `json:"candidate"`
	}
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	if err := ctl.Orch.RelayCandidate(domain.SessionID(p.Room), cid, p.Candidate); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).
			Str("room", p.Room).Msg("ice-candidate dropped")
	}
}
