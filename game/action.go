// File: game/action.go
package game

import "github.com/lguibr/striker/utils"

// Action is one decision unit's request for one player for one tick: an
// acceleration vector plus a kick intent.
type Action struct {
	Accel utils.Vec `json:"accel"`
	Kick  bool      `json:"kick"`
}

// DefaultAction is substituted whenever an agent times out, fails, or
// returns garbage: stand still, no kick.
var DefaultAction = Action{}

// Actions maps player identity to the action requested for this tick.
// Players missing from the map are treated as requesting DefaultAction.
type Actions map[PlayerID]Action

// sanitize repairs a malformed action instead of rejecting it: non-finite
// components collapse to zero and over-long accelerations are clamped to
// the configured maximum.
func (a Action) sanitize(maxAccel float64) Action {
	if !a.Accel.IsFinite() {
		a.Accel = utils.Vec{}
	}
	a.Accel = a.Accel.ClampLen(maxAccel)
	return a
}
