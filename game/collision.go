// File: game/collision.go
package game

import (
	"github.com/lguibr/striker/utils"
)

// cornerCentre returns the centre of the corner arc whose quarter-disc is
// the playable area near that corner, or ok=false when pos is outside every
// corner region.
func cornerCentre(cfg utils.Config, pos utils.Vec) (utils.Vec, bool) {
	r := cfg.CornerRadius
	if r <= 0 {
		return utils.Vec{}, false
	}
	w, h := cfg.FieldWidth, cfg.FieldHeight
	switch {
	case pos.X < r && pos.Y < r:
		return utils.Vec{X: r, Y: r}, true
	case pos.X > w-r && pos.Y < r:
		return utils.Vec{X: w - r, Y: r}, true
	case pos.X < r && pos.Y > h-r:
		return utils.Vec{X: r, Y: h - r}, true
	case pos.X > w-r && pos.Y > h-r:
		return utils.Vec{X: w - r, Y: h - r}, true
	}
	return utils.Vec{}, false
}

// deflectCorner keeps a body inside the quarter-disc of a corner region:
// instead of the sharp two-wall bounce that traps bodies in the vertex, it
// pushes them back along the radial direction away from the vertex and
// reflects only the outward radial velocity component.
func deflectCorner(centre utils.Vec, radius, bodyRadius, restitution float64, pos, vel *utils.Vec) bool {
	offset := pos.Sub(centre)
	maxDist := radius - bodyRadius
	if maxDist <= 0 {
		return false
	}
	dist := offset.Len()
	if dist <= maxDist {
		return false
	}
	n := offset.Norm()
	if n == (utils.Vec{}) {
		return false
	}
	*pos = centre.Add(n.Scale(maxDist))
	if dot := vel.Dot(n); dot > 0 {
		*vel = vel.Sub(n.Scale((1 + restitution) * dot))
	}
	return true
}

// collidePlayerBoundary confines a player to the field. Goal mouths are
// solid for players: the net is a wall to everyone but the ball. Reports
// whether the position had to be corrected.
func collidePlayerBoundary(cfg utils.Config, pos, vel *utils.Vec) bool {
	if centre, ok := cornerCentre(cfg, *pos); ok {
		return deflectCorner(centre, cfg.CornerRadius, cfg.PlayerRadius, wallRestitutionPlayer, pos, vel)
	}
	return collideWalls(cfg.FieldWidth, cfg.FieldHeight, cfg.PlayerRadius, wallRestitutionPlayer, pos, vel)
}

// collideBallBoundary confines the ball to the field plus the two net
// cavities. Inside the goal mouth band the goal line is permeable and the
// net geometry takes over; goal-mouth handling wins over corner handling
// when both could apply.
func collideBallBoundary(cfg utils.Config, pos, vel *utils.Vec) bool {
	r := cfg.BallRadius
	if pos.Y >= cfg.GoalTop() && pos.Y <= cfg.GoalBottom() {
		changed := false
		// Back nets.
		if pos.X-r < -cfg.GoalDepth {
			pos.X = -cfg.GoalDepth + r
			if vel.X < 0 {
				vel.X = -vel.X * wallRestitutionBall
			}
			changed = true
		}
		if pos.X+r > cfg.FieldWidth+cfg.GoalDepth {
			pos.X = cfg.FieldWidth + cfg.GoalDepth - r
			if vel.X > 0 {
				vel.X = -vel.X * wallRestitutionBall
			}
			changed = true
		}
		// Side netting keeps a ball that is behind a goal line inside the
		// mouth opening.
		if pos.X < 0 || pos.X > cfg.FieldWidth {
			if pos.Y-r < cfg.GoalTop() {
				pos.Y = cfg.GoalTop() + r
				if vel.Y < 0 {
					vel.Y = -vel.Y * wallRestitutionBall
				}
				changed = true
			}
			if pos.Y+r > cfg.GoalBottom() {
				pos.Y = cfg.GoalBottom() - r
				if vel.Y > 0 {
					vel.Y = -vel.Y * wallRestitutionBall
				}
				changed = true
			}
		}
		// Top and bottom touchlines still apply while the ball is on the
		// field inside the band; the band is centred, so they cannot.
		return changed
	}
	if centre, ok := cornerCentre(cfg, *pos); ok {
		return deflectCorner(centre, cfg.CornerRadius, r, wallRestitutionBall, pos, vel)
	}
	return collideWalls(cfg.FieldWidth, cfg.FieldHeight, r, wallRestitutionBall, pos, vel)
}

// collideWalls clamps a body to the rectangular field, reflecting the
// velocity component driving it out.
func collideWalls(w, h, r, restitution float64, pos, vel *utils.Vec) bool {
	changed := false
	if pos.X-r < 0 {
		pos.X = r
		if vel.X < 0 {
			vel.X = -vel.X * restitution
		}
		changed = true
	}
	if pos.X+r > w {
		pos.X = w - r
		if vel.X > 0 {
			vel.X = -vel.X * restitution
		}
		changed = true
	}
	if pos.Y-r < 0 {
		pos.Y = r
		if vel.Y < 0 {
			vel.Y = -vel.Y * restitution
		}
		changed = true
	}
	if pos.Y+r > h {
		pos.Y = h - r
		if vel.Y > 0 {
			vel.Y = -vel.Y * restitution
		}
		changed = true
	}
	return changed
}

// resolveCircleCollision separates two overlapping circles in proportion to
// their masses and exchanges an impulse along the collision normal when
// they are approaching. Reports whether there was contact.
func resolveCircleCollision(
	posA, velA *utils.Vec, radiusA, massA float64,
	posB, velB *utils.Vec, radiusB, massB float64,
	restitution float64,
) bool {
	offset := posB.Sub(*posA)
	dist := offset.Len()
	minDist := radiusA + radiusB
	if dist >= minDist {
		return false
	}
	if dist < 1e-3 {
		// Coincident centres: pick a fixed axis so the outcome does not
		// depend on anything but the inputs.
		offset = utils.Vec{X: 1}
		dist = 1
	}
	n := offset.Scale(1 / dist)

	overlap := minDist - dist
	total := massA + massB
	*posA = posA.Sub(n.Scale(overlap * massB / total))
	*posB = posB.Add(n.Scale(overlap * massA / total))

	relVel := velB.Sub(*velA)
	approach := relVel.Dot(n)
	if approach < 0 {
		impulse := -(1 + restitution) * approach / (1/massA + 1/massB)
		*velA = velA.Sub(n.Scale(impulse / massA))
		*velB = velB.Add(n.Scale(impulse / massB))
	}
	return true
}
