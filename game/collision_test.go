// File: game/collision_test.go
package game

import (
	"testing"

	"github.com/lguibr/striker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollideWalls(t *testing.T) {
	testCases := []struct {
		name        string
		pos, vel    utils.Vec
		expectedPos utils.Vec
		expectedVel utils.Vec
		changed     bool
	}{
		{
			name:        "through left wall",
			pos:         utils.Vec{X: -5, Y: 250},
			vel:         utils.Vec{X: -4, Y: 1},
			expectedPos: utils.Vec{X: 10, Y: 250},
			expectedVel: utils.Vec{X: 3.2, Y: 1},
			changed:     true,
		},
		{
			name:        "through bottom wall",
			pos:         utils.Vec{X: 400, Y: 505},
			vel:         utils.Vec{X: 0, Y: 6},
			expectedPos: utils.Vec{X: 400, Y: 490},
			expectedVel: utils.Vec{X: 0, Y: -4.8},
			changed:     true,
		},
		{
			name:        "clear of every wall",
			pos:         utils.Vec{X: 400, Y: 250},
			vel:         utils.Vec{X: 2, Y: 2},
			expectedPos: utils.Vec{X: 400, Y: 250},
			expectedVel: utils.Vec{X: 2, Y: 2},
			changed:     false,
		},
		{
			name:        "touching but leaving",
			pos:         utils.Vec{X: 5, Y: 250},
			vel:         utils.Vec{X: 3, Y: 0},
			expectedPos: utils.Vec{X: 10, Y: 250},
			expectedVel: utils.Vec{X: 3, Y: 0},
			changed:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, vel := tc.pos, tc.vel
			changed := collideWalls(800, 500, 10, 0.8, &pos, &vel)
			assert.Equal(t, tc.changed, changed)
			assert.InDelta(t, tc.expectedPos.X, pos.X, 1e-9)
			assert.InDelta(t, tc.expectedPos.Y, pos.Y, 1e-9)
			assert.InDelta(t, tc.expectedVel.X, vel.X, 1e-9)
			assert.InDelta(t, tc.expectedVel.Y, vel.Y, 1e-9)
		})
	}
}

func TestCornerCentre(t *testing.T) {
	cfg := utils.DefaultConfig()

	centre, ok := cornerCentre(cfg, utils.Vec{X: 10, Y: 10})
	require.True(t, ok)
	assert.Equal(t, utils.Vec{X: cfg.CornerRadius, Y: cfg.CornerRadius}, centre)

	centre, ok = cornerCentre(cfg, utils.Vec{X: cfg.FieldWidth - 5, Y: cfg.FieldHeight - 5})
	require.True(t, ok)
	assert.Equal(t, utils.Vec{X: cfg.FieldWidth - cfg.CornerRadius, Y: cfg.FieldHeight - cfg.CornerRadius}, centre)

	_, ok = cornerCentre(cfg, utils.Vec{X: cfg.FieldWidth / 2, Y: cfg.FieldHeight / 2})
	assert.False(t, ok)
}

func TestDeflectCorner(t *testing.T) {
	centre := utils.Vec{X: 60, Y: 60}
	const radius, bodyRadius = 60.0, 10.0

	t.Run("body driven into the vertex", func(t *testing.T) {
		// Straight toward the corner vertex along the diagonal.
		pos := utils.Vec{X: 3, Y: 3}
		vel := utils.Vec{X: -4, Y: -4}
		require.True(t, deflectCorner(centre, radius, bodyRadius, 0.5, &pos, &vel))

		// Back on the arc, radius - bodyRadius from the centre.
		assert.InDelta(t, radius-bodyRadius, pos.Sub(centre).Len(), 1e-9)
		// Velocity reflected: was outward along the radial, now inward.
		n := pos.Sub(centre).Norm()
		assert.Less(t, vel.Dot(n), 0.0)
	})

	t.Run("inside the arc is untouched", func(t *testing.T) {
		pos := utils.Vec{X: 30, Y: 30}
		vel := utils.Vec{X: -1, Y: -1}
		assert.False(t, deflectCorner(centre, radius, bodyRadius, 0.5, &pos, &vel))
		assert.Equal(t, utils.Vec{X: 30, Y: 30}, pos)
	})

	t.Run("tangential velocity survives", func(t *testing.T) {
		pos := utils.Vec{X: 3, Y: 3}
		before := utils.Vec{X: -4, Y: -4}
		vel := before
		require.True(t, deflectCorner(centre, radius, bodyRadius, 0.5, &pos, &vel))
		n := pos.Sub(centre).Norm()
		tangent := utils.Vec{X: -n.Y, Y: n.X}
		assert.InDelta(t, before.Dot(tangent), vel.Dot(tangent), 1e-9,
			"only the radial component is reflected")
	})
}

func TestCollidePlayerBoundary_GoalMouthIsSolid(t *testing.T) {
	cfg := utils.DefaultConfig()
	// Dead centre of the left goal mouth, pushing through the line.
	pos := utils.Vec{X: 5, Y: cfg.FieldHeight / 2}
	vel := utils.Vec{X: -3, Y: 0}

	require.True(t, collidePlayerBoundary(cfg, &pos, &vel))
	assert.InDelta(t, cfg.PlayerRadius, pos.X, 1e-9, "the net is a wall for players")
	assert.Greater(t, vel.X, 0.0)
}

func TestCollideBallBoundary(t *testing.T) {
	cfg := utils.DefaultConfig()
	mouthY := cfg.FieldHeight / 2

	t.Run("goal line is permeable inside the mouth", func(t *testing.T) {
		pos := utils.Vec{X: -15, Y: mouthY}
		vel := utils.Vec{X: -5, Y: 0}
		assert.False(t, collideBallBoundary(cfg, &pos, &vel))
		assert.Equal(t, utils.Vec{X: -15, Y: mouthY}, pos)
		assert.Equal(t, utils.Vec{X: -5, Y: 0}, vel)
	})

	t.Run("back net stops the ball", func(t *testing.T) {
		pos := utils.Vec{X: -cfg.GoalDepth - 5, Y: mouthY}
		vel := utils.Vec{X: -5, Y: 0}
		require.True(t, collideBallBoundary(cfg, &pos, &vel))
		assert.InDelta(t, -cfg.GoalDepth+cfg.BallRadius, pos.X, 1e-9)
		assert.InDelta(t, 5*wallRestitutionBall, vel.X, 1e-9)
	})

	t.Run("side netting confines the cavity", func(t *testing.T) {
		pos := utils.Vec{X: -20, Y: cfg.GoalTop() + 2}
		vel := utils.Vec{X: 0, Y: -3}
		require.True(t, collideBallBoundary(cfg, &pos, &vel))
		assert.InDelta(t, cfg.GoalTop()+cfg.BallRadius, pos.Y, 1e-9)
		assert.Greater(t, vel.Y, 0.0)
	})

	t.Run("touchline outside the mouth reflects", func(t *testing.T) {
		pos := utils.Vec{X: 400, Y: -4}
		vel := utils.Vec{X: 0, Y: -2}
		require.True(t, collideBallBoundary(cfg, &pos, &vel))
		assert.InDelta(t, cfg.BallRadius, pos.Y, 1e-9)
		assert.InDelta(t, 2*wallRestitutionBall, vel.Y, 1e-9)
	})

	t.Run("corner region deflects radially", func(t *testing.T) {
		pos := utils.Vec{X: 4, Y: 4}
		vel := utils.Vec{X: -3, Y: -3}
		require.True(t, collideBallBoundary(cfg, &pos, &vel))
		centre := utils.Vec{X: cfg.CornerRadius, Y: cfg.CornerRadius}
		assert.InDelta(t, cfg.CornerRadius-cfg.BallRadius, pos.Sub(centre).Len(), 1e-9)
	})
}

func TestResolveCircleCollision(t *testing.T) {
	t.Run("separation is mass proportional", func(t *testing.T) {
		posA := utils.Vec{X: 0, Y: 0}
		posB := utils.Vec{X: 15, Y: 0} // Overlap of 10 against radii 15+10.
		velA, velB := utils.Vec{}, utils.Vec{}

		require.True(t, resolveCircleCollision(&posA, &velA, 15, 1.0, &posB, &velB, 10, 0.5, 0.9))

		// Light ball moves two thirds of the overlap, heavy player one third.
		assert.InDelta(t, -10.0/3.0, posA.X, 1e-9)
		assert.InDelta(t, 15+20.0/3.0, posB.X, 1e-9)
		assert.InDelta(t, 25.0, posB.Sub(posA).Len(), 1e-9)
	})

	t.Run("impulse only when approaching", func(t *testing.T) {
		posA := utils.Vec{X: 0, Y: 0}
		posB := utils.Vec{X: 20, Y: 0}
		velA := utils.Vec{X: -1, Y: 0}
		velB := utils.Vec{X: 1, Y: 0} // Overlapping but separating.

		require.True(t, resolveCircleCollision(&posA, &velA, 15, 1.0, &posB, &velB, 10, 0.5, 0.9))
		assert.Equal(t, utils.Vec{X: -1, Y: 0}, velA, "separating bodies keep their velocity")
		assert.Equal(t, utils.Vec{X: 1, Y: 0}, velB)
	})

	t.Run("head-on exchange conserves momentum", func(t *testing.T) {
		posA := utils.Vec{X: 0, Y: 0}
		posB := utils.Vec{X: 20, Y: 0}
		velA := utils.Vec{X: 3, Y: 0}
		velB := utils.Vec{X: -2, Y: 0}
		const massA, massB = 1.0, 0.5

		before := velA.Scale(massA).Add(velB.Scale(massB))
		require.True(t, resolveCircleCollision(&posA, &velA, 15, massA, &posB, &velB, 10, massB, 0.9))
		after := velA.Scale(massA).Add(velB.Scale(massB))

		assert.InDelta(t, before.X, after.X, 1e-9)
		assert.InDelta(t, before.Y, after.Y, 1e-9)
		assert.Greater(t, velB.X, velA.X, "bodies must end up separating")
	})

	t.Run("no contact", func(t *testing.T) {
		posA := utils.Vec{X: 0, Y: 0}
		posB := utils.Vec{X: 100, Y: 0}
		velA, velB := utils.Vec{}, utils.Vec{}
		assert.False(t, resolveCircleCollision(&posA, &velA, 15, 1.0, &posB, &velB, 10, 0.5, 0.9))
	})

	t.Run("coincident centres use a fixed axis", func(t *testing.T) {
		posA := utils.Vec{X: 50, Y: 50}
		posB := utils.Vec{X: 50, Y: 50}
		velA, velB := utils.Vec{}, utils.Vec{}
		require.True(t, resolveCircleCollision(&posA, &velA, 15, 1.0, &posB, &velB, 10, 0.5, 0.9))
		assert.Less(t, posA.X, posB.X, "deterministic push along the x axis")
		assert.InDelta(t, 50.0, posA.Y, 1e-9)
		assert.InDelta(t, 50.0, posB.Y, 1e-9)
	})
}
