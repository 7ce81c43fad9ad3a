package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

var partnerDisconnected = struct {
	Type string `json:"type"`
}{"partner-disconnected"}

// Leave handles an explicit leave-room: the counterpart gets the same
// partner-disconnected event the disconnect path uses, and the session
// is destroyed. The leaver keeps its connection and may request a new
// match right away.
func (o *Orchestrator) Leave(sid domain.SessionID, sender domain.ConnID) error {
	if _, err := o.counterpart(sid, sender); err != nil {
		return err
	}
	sess, ok := o.Match.Destroy(sid)
	if !ok {
		// Lost the race with a concurrent disconnect or sweep; whoever
		// destroyed it already notified.
		return nil
	}
	other, _ := sess.Other(sender)
	log.Info().Str("module", "orch").Str("session", string(sid)).
		Str("conn", string(sender)).Msg("left session")
	o.notify(other, partnerDisconnected)
	return nil
}

// Disconnect is triggered by the registry when a transport drops. The
// gone connection gets nothing; a surviving partner gets exactly one
// partner-disconnected.
func (o *Orchestrator) Disconnect(cid domain.ConnID) {
	sess, ok := o.Match.Disconnect(cid)
	if !ok {
		return
	}
	other, _ := sess.Other(cid)
	log.Info().Str("module", "orch").Str("session", string(sess.ID)).
		Str("conn", string(cid)).Msg("session closed by disconnect")
	o.notify(other, partnerDisconnected)
}

// OnReaped notifies both members of a session the reaper destroyed.
// Either transport may already be gone; notify copes.
func (o *Orchestrator) OnReaped(sess *domain.Session) {
	log.Info().Str("module", "orch").Str("session", string(sess.ID)).Msg("session reaped")
	o.notify(sess.A, partnerDisconnected)
	o.notify(sess.B, partnerDisconnected)
}
