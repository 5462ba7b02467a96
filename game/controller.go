// File: game/controller.go
package game

import (
	"fmt"
	"math/rand"

	"github.com/lguibr/striker/utils"
)

// Observer receives every published snapshot, in tick order, after the
// Controller has committed it. Observers must be cheap: they run on the
// tick path. They never get a snapshot that is still being assembled.
type Observer interface {
	Observe(state MatchState)
}

// Result is the match-end output.
type Result struct {
	Score  [2]int `json:"score"`
	Winner int    `json:"winner"` // 0 or 1, or DrawResult on a max-tick draw
	Ticks  int    `json:"ticks"`
}

// DrawResult marks a match that ended level at the tick cutoff.
const DrawResult = -1

// kickoffJitter is the maximum per-axis offset applied to kickoff
// formations after a goal, so restarts do not replay the exact same rally.
const kickoffJitter = 20.0

// Controller owns the match: it holds the single current snapshot, drives
// the poll → step → transition cycle, and is the only component that
// advances the tick counter or the phase machine. Everything it publishes
// is immutable history.
type Controller struct {
	cfg       utils.Config
	agents    []Agent
	poller    *Poller
	rng       *rand.Rand
	observers []Observer

	state MatchState
}

// NewController validates the configuration and lineup and builds the
// tick-zero state. The lineup must contain exactly one agent per seat, in
// stable player order (team 0 first, index ascending).
func NewController(cfg utils.Config, agents []Agent, observers ...Observer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(agents) != cfg.PlayersPerTeam*2 {
		return nil, fmt.Errorf("game: lineup has %d agents, want %d", len(agents), cfg.PlayersPerTeam*2)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	state := NewMatchState(cfg, rng)
	for i, agent := range agents {
		if agent == nil {
			return nil, fmt.Errorf("game: nil agent in seat %d", i)
		}
		if agent.ID() != state.Players[i].ID {
			return nil, fmt.Errorf("game: seat %d has agent %v, want %v", i, agent.ID(), state.Players[i].ID)
		}
	}
	c := &Controller{
		cfg:       cfg,
		agents:    agents,
		poller:    NewPoller(cfg, agents),
		rng:       rng,
		observers: observers,
	}
	c.publish(state)
	return c, nil
}

// State returns the current snapshot.
func (c *Controller) State() MatchState { return c.state }

// Poller exposes the poller for failure observability.
func (c *Controller) Poller() *Poller { return c.poller }

// Tick advances the match by one tick. On a fatal physics error the current
// snapshot is left untouched: the match halts at the last completed tick.
// Ticking a finished match is a no-op.
func (c *Controller) Tick() error {
	cur := c.state
	if cur.Phase == Finished {
		return nil
	}

	// Decide. During a celebration the players are frozen: the poller is
	// skipped outright and the step sees zero actions.
	var actions Actions
	if cur.Phase == Playing {
		actions = c.poller.Poll(cur)
	}

	// Simulate.
	next, events, err := Step(c.cfg, cur, actions)
	if err != nil {
		return fmt.Errorf("tick %d: %w", cur.Tick, err)
	}
	next.Tick = cur.Tick + 1

	// Transition.
	switch cur.Phase {
	case Playing:
		if events.Goal {
			if next.Score[events.ScoringTeam] >= c.cfg.WinScore {
				next.Phase = Finished
			} else {
				next.Phase = Celebrating
				next.CelebrationLeft = c.cfg.CelebrationTicks
				for i := range next.Players {
					next.Players[i].Frozen = true
				}
			}
		}
	case Celebrating:
		if cur.CelebrationLeft > 1 {
			next.CelebrationLeft = cur.CelebrationLeft - 1
		} else {
			// Celebration over: kickoff happens atomically with the
			// return to Playing.
			c.applyKickoff(&next)
			next.Phase = Playing
			next.CelebrationLeft = 0
			for _, agent := range c.agents {
				agent.Reset()
			}
		}
	}
	if next.Phase != Finished && next.Tick >= c.cfg.MaxTicks {
		next.Phase = Finished
	}

	c.publish(next)
	return nil
}

// Run advances ticks until the match finishes, then reports the result.
func (c *Controller) Run() (Result, error) {
	for c.state.Phase != Finished {
		if err := c.Tick(); err != nil {
			return Result{}, err
		}
	}
	return c.Result(), nil
}

// Result summarises the match so far; it is final once the phase is
// Finished.
func (c *Controller) Result() Result {
	s := c.state
	winner := DrawResult
	if s.Score[0] > s.Score[1] {
		winner = 0
	} else if s.Score[1] > s.Score[0] {
		winner = 1
	}
	return Result{Score: s.Score, Winner: winner, Ticks: s.Tick}
}

// applyKickoff rebuilds the formation in place: players back to their
// columns with a little jitter, velocities and cooldowns zeroed, ball back
// on the centre spot with a fresh seeded roll-out.
func (c *Controller) applyKickoff(s *MatchState) {
	for i := range s.Players {
		p := &s.Players[i]
		base := kickoffPosition(c.cfg, p.ID.Team, p.ID.Index)
		p.Pos = utils.Vec{
			X: base.X + (c.rng.Float64()*2-1)*kickoffJitter,
			Y: base.Y + (c.rng.Float64()*2-1)*kickoffJitter,
		}
		p.Vel = utils.Vec{}
		p.KickCooldown = 0
		p.Frozen = false
	}
	s.Ball = BallState{
		Pos:        utils.Vec{X: c.cfg.FieldWidth / 2, Y: c.cfg.FieldHeight / 2},
		Vel:        kickoffBallVelocity(c.rng),
		Possession: NoPossession,
	}
}

func (c *Controller) publish(state MatchState) {
	c.state = state
	for _, obs := range c.observers {
		obs.Observe(state)
	}
}
