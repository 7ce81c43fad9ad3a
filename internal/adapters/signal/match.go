package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

func (ctl *MatchWSController) handleFindMatch(cid domain.ConnID, data []byte) {
	type findPayload struct {
		Type string `json:"type"`
		Mode string `json:"mode"`
	}
	var p findPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad find-match payload")
		return
	}

	mode, err := domain.ParseMode(p.Mode)
	if err != nil {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).
			Str("mode", p.Mode).Msg("find-match with unknown mode")
		return
	}

	if ctl.Limiter != nil && !ctl.Limiter.Allow(cid) {
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Msg("find-match rate limited")
		return
	}

	// Rejections carry no reply: a rejected find-match simply never
	// yields a matched event.
	if err := ctl.Orch.FindMatch(cid, mode); err != nil && !errors.Is(err, core.ErrAlreadyQueuedOrPaired) {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("find-match")
	}
}
