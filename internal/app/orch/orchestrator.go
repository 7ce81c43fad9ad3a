package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/app"
	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

// Orchestrator glues the connection registry to the matchmaker and owns
// every outbound notification. State mutation happens inside matchmaker
// methods; delivery is fire-and-forget and always happens after the
// lock is released.
type Orchestrator struct {
	Registry *app.Registry
	Match    *app.Matchmaker
}

// FindMatch enqueues cid or pairs it with the oldest waiter. On a pair
// both members get the matched event; on enqueue nothing is sent and
// the caller stays pending. A connection that already has state is
// rejected: no event, no state change.
func (o *Orchestrator) FindMatch(cid domain.ConnID, mode domain.Mode) error {
	sess, err := o.Match.RequestMatch(cid, mode)
	if err != nil {
		log.Warn().Str("module", "orch").Str("conn", string(cid)).
			Str("mode", string(mode)).Err(err).Msg("find-match rejected")
		return err
	}
	if sess == nil {
		return nil
	}
	matched := struct {
		Type string           `json:"type"`
		Room domain.SessionID `json:"room"`
		Mode domain.Mode      `json:"mode"`
	}{
		Type: "matched",
		Room: sess.ID,
		Mode: sess.Mode,
	}
	o.notify(sess.A, matched)
	o.notify(sess.B, matched)
	return nil
}

// counterpart validates that sender belongs to sid and returns the
// other member. This check is what keeps sessions isolated from each
// other: an event that fails it is dropped and nothing is forwarded.
func (o *Orchestrator) counterpart(sid domain.SessionID, sender domain.ConnID) (domain.ConnID, error) {
	sess, ok := o.Match.Get(sid)
	if !ok {
		return "", core.ErrUnknownSession
	}
	other, ok := sess.Other(sender)
	if !ok {
		return "", core.ErrNotAMember
	}
	return other, nil
}

// notify marshals v and hands it to cid's transport. Delivery is best
// effort: a missing or saturated connection just drops the frame, and
// the eventual disconnect event handles cleanup.
func (o *Orchestrator) notify(cid domain.ConnID, v any) {
	conn, ok := o.Registry.Get(cid)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(cid)).Msg("notify: transport gone")
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("notify: marshal")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", string(cid)).Msg("notify: dropped frame")
	}
}
