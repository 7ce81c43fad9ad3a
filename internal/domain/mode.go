// Package domain contains entity without logic, just meta-data
package domain

import "errors"

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects which waiting queue a connection joins and which
// signaling events make sense once paired.
type Mode string

const (
	ModeText  Mode = "text"
	ModeVideo Mode = "video"
)

// Modes lists every valid mode; the matchmaker keeps one queue per entry.
func Modes() []Mode {
	return []Mode{ModeText, ModeVideo}
}

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeText, ModeVideo:
		return Mode(raw), nil
	}
	return "", ErrUnknownMode
}
