// File: game/agent.go
package game

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lguibr/striker/utils"
)

// Agent is a decision unit driving one player. Act receives an immutable
// snapshot and must return the action for this tick within the poller's
// deadline; a slow or failing agent only costs itself that tick. Agents
// keep whatever internal state they like — the engine only promises to
// hand every agent the same snapshot each tick. Reset is called when play
// restarts from a kickoff.
type Agent interface {
	ID() PlayerID
	Act(state MatchState) (Action, error)
	Reset()
}

// AgentFactory builds an agent for a seat. The seed is unique per seat and
// derived from the match seed, so lineups replay deterministically.
type AgentFactory func(id PlayerID, cfg utils.Config, seed int64) Agent

var (
	registryMu sync.RWMutex
	registry   = map[string]AgentFactory{}
)

// RegisterAgent makes a factory available under a name. Registration is
// typically done from init; registering a duplicate name panics because it
// can only be a programming error.
func RegisterAgent(name string, factory AgentFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("game: agent %q registered twice", name))
	}
	registry[name] = factory
}

// NewAgent instantiates a registered agent type by name.
func NewAgent(name string, id PlayerID, cfg utils.Config, seed int64) (Agent, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("game: unknown agent type %q (have %v)", name, AgentNames())
	}
	return factory(id, cfg, seed), nil
}

// AgentNames lists the registered agent types, sorted.
func AgentNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
