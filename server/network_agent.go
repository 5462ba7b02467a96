// File: server/network_agent.go
package server

import (
	"sync"

	"github.com/lguibr/striker/game"
)

// NetworkAgent drives one seat from a websocket client. The client streams
// action messages at its own pace; the agent keeps only the latest one and
// serves it to every poll, so a slow client degrades to repeating its last
// intent instead of stalling the match. With no client attached the seat
// plays DefaultAction.
type NetworkAgent struct {
	id game.PlayerID

	mu       sync.Mutex
	latest   game.Action
	attached bool
}

// NewNetworkAgent builds a detached network seat.
func NewNetworkAgent(id game.PlayerID) *NetworkAgent {
	return &NetworkAgent{id: id}
}

func (a *NetworkAgent) ID() game.PlayerID { return a.id }

// Act returns the latest action received from the client. It never blocks:
// the poller's deadline exists for agents that compute, not for this one.
func (a *NetworkAgent) Act(game.MatchState) (game.Action, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.attached {
		return game.DefaultAction, nil
	}
	return a.latest, nil
}

// Reset drops the stored intent at a kickoff so a stale pre-goal command
// does not leak into the restart.
func (a *NetworkAgent) Reset() {
	a.mu.Lock()
	a.latest = game.DefaultAction
	a.mu.Unlock()
}

// Set stores a freshly received action.
func (a *NetworkAgent) Set(action game.Action) {
	a.mu.Lock()
	a.latest = action
	a.mu.Unlock()
}

// Latest returns the stored action.
func (a *NetworkAgent) Latest() game.Action {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}

func (a *NetworkAgent) attach() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.attached {
		return false
	}
	a.attached = true
	a.latest = game.DefaultAction
	return true
}

func (a *NetworkAgent) detach() {
	a.mu.Lock()
	a.attached = false
	a.latest = game.DefaultAction
	a.mu.Unlock()
}
