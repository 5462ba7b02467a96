// File: game/agents.go
package game

import (
	"math"
	"math/rand"

	"github.com/lguibr/striker/utils"
)

func init() {
	RegisterAgent("idle", func(id PlayerID, _ utils.Config, _ int64) Agent {
		return &IdleAgent{id: id}
	})
	RegisterAgent("random", func(id PlayerID, cfg utils.Config, seed int64) Agent {
		return &RandomAgent{id: id, cfg: cfg, rng: rand.New(rand.NewSource(seed))}
	})
	RegisterAgent("chaser", func(id PlayerID, cfg utils.Config, seed int64) Agent {
		return &ChaserAgent{id: id, cfg: cfg, rng: rand.New(rand.NewSource(seed)), noise: 0.15}
	})
	RegisterAgent("goalie", func(id PlayerID, cfg utils.Config, seed int64) Agent {
		return &GoalieAgent{id: id, cfg: cfg, rng: rand.New(rand.NewSource(seed)), noise: 0.1}
	})
	RegisterAgent("striker", func(id PlayerID, cfg utils.Config, _ int64) Agent {
		return &StrikerAgent{id: id, cfg: cfg}
	})
}

// IdleAgent never moves. Useful as an opponent placeholder and in tests.
type IdleAgent struct{ id PlayerID }

func (a *IdleAgent) ID() PlayerID                   { return a.id }
func (a *IdleAgent) Act(MatchState) (Action, error) { return DefaultAction, nil }
func (a *IdleAgent) Reset()                         {}

// RandomAgent wanders in a random direction each tick.
type RandomAgent struct {
	id  PlayerID
	cfg utils.Config
	rng *rand.Rand
}

func (a *RandomAgent) ID() PlayerID { return a.id }

func (a *RandomAgent) Act(MatchState) (Action, error) {
	angle := a.rng.Float64() * 2 * math.Pi
	mag := a.rng.Float64() * a.cfg.MaxAcceleration
	return Action{Accel: utils.Vec{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}}, nil
}

func (a *RandomAgent) Reset() {}

// ChaserAgent runs straight at the ball and kicks the moment it is in
// range with the cooldown expired.
type ChaserAgent struct {
	id    PlayerID
	cfg   utils.Config
	rng   *rand.Rand
	noise float64
}

func (a *ChaserAgent) ID() PlayerID { return a.id }

func (a *ChaserAgent) Act(state MatchState) (Action, error) {
	me, ok := state.Player(a.id)
	if !ok {
		return DefaultAction, nil
	}
	toBall := state.Ball.Pos.Sub(me.Pos)
	accel := toBall.Norm().Scale(a.cfg.MaxAcceleration)
	accel.X += (a.rng.Float64()*2 - 1) * a.noise
	accel.Y += (a.rng.Float64()*2 - 1) * a.noise
	return Action{
		Accel: accel,
		Kick:  toBall.Len() <= a.cfg.KickRange && me.CanKick(),
	}, nil
}

func (a *ChaserAgent) Reset() {}

// GoalieAgent holds a spot in front of its own goal, tracking the ball's
// height within the mouth, and clears anything that comes close.
type GoalieAgent struct {
	id    PlayerID
	cfg   utils.Config
	rng   *rand.Rand
	noise float64
}

func (a *GoalieAgent) ID() PlayerID { return a.id }

func (a *GoalieAgent) Act(state MatchState) (Action, error) {
	me, ok := state.Player(a.id)
	if !ok {
		return DefaultAction, nil
	}
	guardX := a.cfg.FieldWidth * 0.08
	if a.id.Team == 1 {
		guardX = a.cfg.FieldWidth * 0.92
	}
	margin := a.cfg.PlayerRadius * 1.5
	targetY := utils.Clamp(state.Ball.Pos.Y, a.cfg.GoalTop()+margin, a.cfg.GoalBottom()-margin)

	accel := utils.Vec{X: guardX - me.Pos.X, Y: targetY - me.Pos.Y}.Norm().Scale(a.cfg.MaxAcceleration)
	accel.X += (a.rng.Float64()*2 - 1) * a.noise
	accel.Y += (a.rng.Float64()*2 - 1) * a.noise
	return Action{
		Accel: accel,
		Kick:  utils.Distance(state.Ball.Pos, me.Pos) <= a.cfg.KickRange && me.CanKick(),
	}, nil
}

func (a *GoalieAgent) Reset() {}

// StrikerAgent positions itself between the ball and the opponent goal,
// then drives the ball forward.
type StrikerAgent struct {
	id  PlayerID
	cfg utils.Config
}

func (a *StrikerAgent) ID() PlayerID { return a.id }

func (a *StrikerAgent) Act(state MatchState) (Action, error) {
	me, ok := state.Player(a.id)
	if !ok {
		return DefaultAction, nil
	}
	goal := utils.Vec{X: a.cfg.FieldWidth, Y: a.cfg.FieldHeight / 2}
	if a.id.Team == 1 {
		goal = utils.Vec{Y: a.cfg.FieldHeight / 2}
	}

	toBall := state.Ball.Pos.Sub(me.Pos)
	target := state.Ball.Pos
	if toBall.Len() > a.cfg.KickRange {
		// Approach from the defensive side of the ball so a kick sends it
		// goalwards, not backwards.
		behind := state.Ball.Pos.Sub(goal.Sub(state.Ball.Pos).Norm().Scale(a.cfg.PlayerRadius * 2))
		target = behind
	}
	return Action{
		Accel: target.Sub(me.Pos).Norm().Scale(a.cfg.MaxAcceleration),
		Kick:  toBall.Len() <= a.cfg.KickRange && me.CanKick(),
	}, nil
}

func (a *StrikerAgent) Reset() {}
