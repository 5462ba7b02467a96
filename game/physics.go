// File: game/physics.go
package game

import (
	"errors"
	"fmt"

	"github.com/lguibr/striker/utils"
)

// ErrInvariant is returned when a step produces a state that violates a
// physics invariant. It signals a logic defect, not bad agent input, and is
// fatal to the match.
var ErrInvariant = errors.New("physics invariant violated")

// StepEvents reports what the step observed beyond the new state.
type StepEvents struct {
	Goal        bool
	ScoringTeam Team
}

// collisionIterations bounds the separate-and-impulse relaxation loop.
const collisionIterations = 4

// Restitution per collision kind, matching how lively each contact is.
const (
	wallRestitutionBall   = 0.8
	wallRestitutionPlayer = 0.5
	playerBallRestitution = 0.9
	playerPairRestitution = 0.5
)

// Step advances the match by one tick of pure physics. It is deterministic:
// equal inputs give bit-identical outputs regardless of wall clock, process
// or the concurrency that assembled the action map. The tick counter, phase
// and celebration countdown belong to the Controller and pass through
// untouched.
//
// Substep order is fixed; reordering it changes trajectories:
//
//	accelerate, friction, integrate, field boundaries, goal nets,
//	body collisions, kicks, goal detection, cooldown decay.
func Step(cfg utils.Config, prev MatchState, actions Actions) (MatchState, StepEvents, error) {
	next := prev.clone()
	var events StepEvents

	// 1. Requested acceleration, frozen players excepted.
	for i := range next.Players {
		p := &next.Players[i]
		if p.Frozen {
			continue
		}
		act := actions[p.ID].sanitize(cfg.MaxAcceleration)
		p.Vel = p.Vel.Add(act.Accel).ClampLen(cfg.PlayerMaxSpeed)
	}

	// 2. Friction on every moving body, celebration included.
	for i := range next.Players {
		next.Players[i].Vel = next.Players[i].Vel.Scale(cfg.Friction)
	}
	next.Ball.Vel = next.Ball.Vel.Scale(cfg.Friction).ClampLen(cfg.BallMaxSpeed)

	// 3. Integrate.
	for i := range next.Players {
		next.Players[i].Pos = next.Players[i].Pos.Add(next.Players[i].Vel)
	}
	next.Ball.Pos = next.Ball.Pos.Add(next.Ball.Vel)

	// 4-6. Boundary, net and body collisions, relaxed over a few rounds so
	// a push-out from one contact cannot leave another overlapping.
	for iter := 0; iter < collisionIterations; iter++ {
		settled := true
		for i := range next.Players {
			p := &next.Players[i]
			if collidePlayerBoundary(cfg, &p.Pos, &p.Vel) {
				settled = false
			}
		}
		if collideBallBoundary(cfg, &next.Ball.Pos, &next.Ball.Vel) {
			settled = false
		}
		for i := range next.Players {
			p := &next.Players[i]
			if resolveCircleCollision(
				&p.Pos, &p.Vel, cfg.PlayerRadius, cfg.PlayerMass,
				&next.Ball.Pos, &next.Ball.Vel, cfg.BallRadius, cfg.BallMass,
				playerBallRestitution,
			) {
				settled = false
			}
		}
		for i := range next.Players {
			for j := i + 1; j < len(next.Players); j++ {
				a, b := &next.Players[i], &next.Players[j]
				if resolveCircleCollision(
					&a.Pos, &a.Vel, cfg.PlayerRadius, cfg.PlayerMass,
					&b.Pos, &b.Vel, cfg.PlayerRadius, cfg.PlayerMass,
					playerPairRestitution,
				) {
					settled = false
				}
			}
		}
		if settled {
			break
		}
	}
	// Collision impulses may overshoot the speed caps; the bound is a hard
	// guarantee of the published state, so clamp once more.
	for i := range next.Players {
		next.Players[i].Vel = next.Players[i].Vel.ClampLen(cfg.PlayerMaxSpeed)
	}
	next.Ball.Vel = next.Ball.Vel.ClampLen(cfg.BallMaxSpeed)

	// 7. Kicks, in stable player slot order so simultaneous kicks resolve
	// identically on every run.
	kicked := make([]bool, len(next.Players))
	for i := range next.Players {
		p := &next.Players[i]
		act := actions[p.ID]
		if !act.Kick || p.KickCooldown > 0 {
			continue
		}
		offset := next.Ball.Pos.Sub(p.Pos)
		if offset.Len() > cfg.KickRange {
			continue
		}
		dir := offset.Norm()
		if dir == (utils.Vec{}) {
			// Ball dead on the player: fall back to where they are
			// moving, then to where they want to move.
			dir = p.Vel.Norm()
			if dir == (utils.Vec{}) {
				dir = act.sanitize(cfg.MaxAcceleration).Accel.Norm()
			}
		}
		if dir == (utils.Vec{}) {
			continue
		}
		next.Ball.Vel = next.Ball.Vel.Add(dir.Scale(cfg.KickPower)).ClampLen(cfg.BallMaxSpeed)
		next.Ball.Possession = i
		p.KickCooldown = cfg.KickCooldownTicks
		kicked[i] = true
	}

	// 8. Goal detection, edge-triggered on the ball fully crossing the
	// line this step. Suppressed outside normal play so a ball resting in
	// the net during a celebration cannot score twice.
	if prev.Phase == Playing {
		if team, ok := detectGoal(cfg, prev.Ball.Pos, next.Ball.Pos); ok {
			next.Score[team]++
			events.Goal = true
			events.ScoringTeam = team
		}
	}

	// 9. Cooldown decay. A cooldown set by this step's kick stays intact
	// so the full value is visible in the published state.
	for i := range next.Players {
		if !kicked[i] && next.Players[i].KickCooldown > 0 {
			next.Players[i].KickCooldown--
		}
	}

	if err := checkInvariants(cfg, next); err != nil {
		return MatchState{}, StepEvents{}, err
	}
	return next, events, nil
}

// detectGoal reports the scoring team when the ball went from not-fully-past
// to fully past a goal line while inside the goal mouth.
func detectGoal(cfg utils.Config, before, after utils.Vec) (Team, bool) {
	if after.Y < cfg.GoalTop() || after.Y > cfg.GoalBottom() {
		return 0, false
	}
	r := cfg.BallRadius
	// Left goal, defended by team 0: team 1 scores.
	if after.X+r <= 0 && before.X+r > 0 {
		return 1, true
	}
	// Right goal, defended by team 1: team 0 scores.
	if after.X-r >= cfg.FieldWidth && before.X-r < cfg.FieldWidth {
		return 0, true
	}
	return 0, false
}

// checkInvariants refuses to publish a corrupt state. Any hit here is a bug
// in the step itself.
func checkInvariants(cfg utils.Config, s MatchState) error {
	const eps = 1e-6
	for _, p := range s.Players {
		if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
			return fmt.Errorf("%w: player %v has non-finite motion", ErrInvariant, p.ID)
		}
		if p.Vel.Len() > cfg.PlayerMaxSpeed+eps {
			return fmt.Errorf("%w: player %v speed %g exceeds max %g",
				ErrInvariant, p.ID, p.Vel.Len(), cfg.PlayerMaxSpeed)
		}
		if p.KickCooldown < 0 {
			return fmt.Errorf("%w: player %v cooldown %d is negative", ErrInvariant, p.ID, p.KickCooldown)
		}
	}
	if !s.Ball.Pos.IsFinite() || !s.Ball.Vel.IsFinite() {
		return fmt.Errorf("%w: ball has non-finite motion", ErrInvariant)
	}
	if s.Ball.Vel.Len() > cfg.BallMaxSpeed+eps {
		return fmt.Errorf("%w: ball speed %g exceeds max %g",
			ErrInvariant, s.Ball.Vel.Len(), cfg.BallMaxSpeed)
	}
	return nil
}
