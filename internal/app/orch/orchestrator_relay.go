package orch

import (
	"encoding/json"

	"github.com/dkeye/Roulette/internal/domain"
)

// Relay handlers forward opaque payloads to the sender's counterpart.
// Payload contents are never inspected or re-encoded; only the
// addressing fields matter here.

func (o *Orchestrator) RelayMessage(sid domain.SessionID, sender domain.ConnID, message json.RawMessage) error {
	other, err := o.counterpart(sid, sender)
	if err != nil {
		return err
	}
	o.notify(other, struct {
		Type    string          `json:"type"`
		Message json.RawMessage `json:"message"`
	}{"receive-message", message})
	return nil
}

// ReadyForVideo tells the counterpart to start WebRTC negotiation.
func (o *Orchestrator) ReadyForVideo(sid domain.SessionID, sender domain.ConnID) error {
	other, err := o.counterpart(sid, sender)
	if err != nil {
		return err
	}
	o.notify(other, struct {
		Type string `json:"type"`
	}{"initiate-call"})
	return nil
}

func (o *Orchestrator) RelayOffer(sid domain.SessionID, sender domain.ConnID, offer json.RawMessage) error {
	other, err := o.counterpart(sid, sender)
	if err != nil {
		return err
	}
	o.notify(other, struct {
		Type  string          `json:"type"`
		Offer json.RawMessage `json:"offer"`
	}{"offer", offer})
	return nil
}

func (o *Orchestrator) RelayAnswer(sid domain.SessionID, sender domain.ConnID, answer json.RawMessage) error {
	other, err := o.counterpart(sid, sender)
	if err != nil {
		return err
	}
	o.notify(other, struct {
		Type   string          `json:"type"`
		Answer json.RawMessage `json:"answer"`
	}{"answer", answer})
	return nil
}

func (o *Orchestrator) RelayCandidate(sid domain.SessionID, sender domain.ConnID, candidate json.RawMessage) error {
	other, err := o.counterpart(sid, sender)
	if err != nil {
		return err
	}
	o.notify(other, struct {
		Type      string          `json:"type"`
		Candidate json.RawMessage `json:"candidate"`
	}{"ice-candidate", candidate})
	return nil
}
