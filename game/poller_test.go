// File: game/poller_test.go
package game

import (
	"errors"
	"testing"
	"time"

	"github.com/lguibr/striker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAgent is a scriptable agent for poller and controller tests.
type stubAgent struct {
	id     PlayerID
	action Action
	err    error
	delay  time.Duration
	panics bool
	acts   int
	resets int
}

func (a *stubAgent) ID() PlayerID { return a.id }

func (a *stubAgent) Act(MatchState) (Action, error) {
	a.acts++
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	if a.panics {
		panic("scripted panic")
	}
	return a.action, a.err
}

func (a *stubAgent) Reset() { a.resets++ }

func pollerConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.PlayersPerTeam = 2
	cfg.AgentTimeout = 30 * time.Millisecond
	return cfg
}

func lineupIDs(cfg utils.Config) []PlayerID {
	ids := make([]PlayerID, 0, cfg.PlayersPerTeam*2)
	for team := Team(0); team < 2; team++ {
		for i := 0; i < cfg.PlayersPerTeam; i++ {
			ids = append(ids, PlayerID{Team: team, Index: i})
		}
	}
	return ids
}

func TestPoller_CollectsEveryAgent(t *testing.T) {
	cfg := pollerConfig()
	ids := lineupIDs(cfg)
	agents := make([]Agent, len(ids))
	for i, id := range ids {
		agents[i] = &stubAgent{id: id, action: Action{Accel: utils.Vec{X: 0.1 * float64(i+1)}}}
	}

	actions := NewPoller(cfg, agents).Poll(NewMatchState(cfg, nil))
	require.Len(t, actions, len(ids))
	for i, id := range ids {
		assert.InDelta(t, 0.1*float64(i+1), actions[id].Accel.X, 1e-9)
	}
}

func TestPoller_SlowAgentGetsDefaultAction(t *testing.T) {
	cfg := pollerConfig()
	ids := lineupIDs(cfg)
	agents := make([]Agent, len(ids))
	for i, id := range ids {
		agents[i] = &stubAgent{id: id, action: Action{Kick: true}}
	}
	slow := ids[1]
	agents[1] = &stubAgent{id: slow, delay: 500 * time.Millisecond, action: Action{Kick: true}}

	poller := NewPoller(cfg, agents)
	start := time.Now()
	actions := poller.Poll(NewMatchState(cfg, nil))
	elapsed := time.Since(start)

	assert.Equal(t, DefaultAction, actions[slow], "the deadline miss costs only this tick")
	for _, id := range ids {
		if id != slow {
			assert.True(t, actions[id].Kick, "fast agents are unaffected")
		}
	}
	// One shared deadline for the whole poll, not one per agent.
	assert.Less(t, elapsed, 250*time.Millisecond)
	assert.Equal(t, uint64(1), poller.FailureCounts()[slow])
}

func TestPoller_ErrorAndPanicSubstitution(t *testing.T) {
	cfg := pollerConfig()
	ids := lineupIDs(cfg)
	agents := []Agent{
		&stubAgent{id: ids[0], err: errors.New("strategy exploded")},
		&stubAgent{id: ids[1], panics: true},
		&stubAgent{id: ids[2], action: Action{Accel: utils.Vec{Y: 0.2}}},
		&stubAgent{id: ids[3], action: Action{}},
	}

	poller := NewPoller(cfg, agents)
	actions := poller.Poll(NewMatchState(cfg, nil))

	assert.Equal(t, DefaultAction, actions[ids[0]])
	assert.Equal(t, DefaultAction, actions[ids[1]])
	assert.InDelta(t, 0.2, actions[ids[2]].Accel.Y, 1e-9)

	counts := poller.FailureCounts()
	assert.Equal(t, uint64(1), counts[ids[0]])
	assert.Equal(t, uint64(1), counts[ids[1]])
	assert.Zero(t, counts[ids[2]])
}

func TestPoller_SanitizesActions(t *testing.T) {
	cfg := pollerConfig()
	ids := lineupIDs(cfg)
	agents := make([]Agent, len(ids))
	for i, id := range ids {
		agents[i] = &stubAgent{id: id}
	}
	// Far beyond the acceleration cap.
	agents[0] = &stubAgent{id: ids[0], action: Action{Accel: utils.Vec{X: 100, Y: 100}}}

	actions := NewPoller(cfg, agents).Poll(NewMatchState(cfg, nil))
	assert.InDelta(t, cfg.MaxAcceleration, actions[ids[0]].Accel.Len(), 1e-9)
}

func TestPoller_FailureCountsAccumulate(t *testing.T) {
	cfg := pollerConfig()
	ids := lineupIDs(cfg)
	agents := make([]Agent, len(ids))
	for i, id := range ids {
		agents[i] = &stubAgent{id: id}
	}
	bad := ids[0]
	agents[0] = &stubAgent{id: bad, err: errors.New("always fails")}

	poller := NewPoller(cfg, agents)
	state := NewMatchState(cfg, nil)
	for i := 0; i < 5; i++ {
		poller.Poll(state)
	}
	assert.Equal(t, uint64(5), poller.FailureCounts()[bad])
}
