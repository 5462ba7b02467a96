// File: game/poller.go
package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/lguibr/striker/utils"
)

// Failure reasons recorded by the poller.
const (
	FailTimeout = "timeout"
	FailError   = "error"
	FailPanic   = "panic"
)

// Poller fans one snapshot out to every agent in parallel and gathers one
// action per player under a shared wall-clock deadline. An agent that
// misses the deadline, returns an error, or panics gets DefaultAction for
// that tick; the match never waits for it and never retries. The poll
// result is keyed and applied by player identity, so arrival order cannot
// leak into the physics.
type Poller struct {
	cfg     utils.Config
	agents  []Agent
	timeout time.Duration

	mu       sync.Mutex
	failures map[PlayerID]uint64
}

// NewPoller wires a poller over a fixed agent lineup. The lineup order is
// the stable player order used everywhere else.
func NewPoller(cfg utils.Config, agents []Agent) *Poller {
	return &Poller{
		cfg:      cfg,
		agents:   agents,
		timeout:  cfg.AgentTimeout,
		failures: make(map[PlayerID]uint64),
	}
}

type pollReply struct {
	action   Action
	err      error
	panicked bool
}

// Poll asks every agent for its action for this snapshot. It always
// returns a complete mapping: one sanitized action per agent, defaults
// substituted for failures.
//
// Agents run as one goroutine each. A goroutine whose agent hangs is
// abandoned, not killed — its reply channel is buffered so it can finish
// whenever it likes, and the stale reply is simply never read into a later
// tick.
func (p *Poller) Poll(state MatchState) Actions {
	replies := make([]chan pollReply, len(p.agents))
	for i, agent := range p.agents {
		ch := make(chan pollReply, 1)
		replies[i] = ch
		go func(agent Agent, ch chan<- pollReply) {
			defer func() {
				if r := recover(); r != nil {
					ch <- pollReply{err: fmt.Errorf("agent panicked: %v", r), panicked: true}
				}
			}()
			action, err := agent.Act(state)
			ch <- pollReply{action: action, err: err}
		}(agent, ch)
	}

	deadline := time.NewTimer(p.timeout)
	defer deadline.Stop()
	expired := false

	actions := make(Actions, len(p.agents))
	for i, agent := range p.agents {
		id := agent.ID()
		actions[id] = DefaultAction

		var reply pollReply
		ok := false
		if !expired {
			select {
			case reply = <-replies[i]:
				ok = true
			case <-deadline.C:
				expired = true
			}
		}
		if expired && !ok {
			// The budget is spent; take only what already arrived.
			select {
			case reply = <-replies[i]:
				ok = true
			default:
			}
		}

		switch {
		case !ok:
			p.recordFailure(id, FailTimeout)
		case reply.panicked:
			p.recordFailure(id, FailPanic)
		case reply.err != nil:
			p.recordFailure(id, FailError)
		default:
			actions[id] = reply.action.sanitize(p.cfg.MaxAcceleration)
		}
	}
	return actions
}

// FailureCounts returns a snapshot of per-player failure totals since the
// poller was created.
func (p *Poller) FailureCounts() map[PlayerID]uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[PlayerID]uint64, len(p.failures))
	for id, n := range p.failures {
		out[id] = n
	}
	return out
}

func (p *Poller) recordFailure(id PlayerID, reason string) {
	p.mu.Lock()
	count := p.failures[id] + 1
	p.failures[id] = count
	p.mu.Unlock()
	// Log on power-of-two counts so a dead agent cannot flood the output.
	if count&(count-1) == 0 {
		fmt.Printf("WARN: Poller: agent %v failed (%s), count=%d\n", id, reason, count)
	}
}
