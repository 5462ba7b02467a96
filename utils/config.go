// File: utils/config.go
package utils

import (
	"fmt"
	"time"
)

// Config holds all configurable match parameters. It is built once at match
// start and passed by value; nothing mutates it afterwards.
type Config struct {
	// Field geometry
	FieldWidth   float64 `json:"fieldWidth"`   // Field length along x
	FieldHeight  float64 `json:"fieldHeight"`  // Field length along y
	GoalHeight   float64 `json:"goalHeight"`   // Mouth opening along y, centred on the field
	GoalDepth    float64 `json:"goalDepth"`    // How far the net extends behind the goal line
	CornerRadius float64 `json:"cornerRadius"` // Radius of the corner deflection regions

	// Teams
	PlayersPerTeam int `json:"playersPerTeam"`

	// Bodies
	PlayerRadius float64 `json:"playerRadius"`
	PlayerMass   float64 `json:"playerMass"`
	BallRadius   float64 `json:"ballRadius"`
	BallMass     float64 `json:"ballMass"`

	// Movement
	MaxAcceleration float64 `json:"maxAcceleration"` // Per-tick cap on requested acceleration magnitude
	PlayerMaxSpeed  float64 `json:"playerMaxSpeed"`
	BallMaxSpeed    float64 `json:"ballMaxSpeed"`
	Friction        float64 `json:"friction"` // Multiplicative per-tick velocity decay, e.g. 0.98

	// Kicking
	KickRange         float64 `json:"kickRange"`
	KickPower         float64 `json:"kickPower"`
	KickCooldownTicks int     `json:"kickCooldownTicks"`

	// Match flow
	WinScore         int `json:"winScore"`
	MaxTicks         int `json:"maxTicks"`
	CelebrationTicks int `json:"celebrationTicks"`

	// Agents
	AgentTimeout time.Duration `json:"agentTimeout"` // Wall-clock budget per agent per tick

	// Pacing for the server-authoritative mode. The engine itself is
	// turn-based; this only throttles the broadcast loop.
	TickPeriod time.Duration `json:"tickPeriod"`

	// Seed drives kickoff direction, formation jitter and built-in agent
	// noise. Two matches with equal Config and agent lineup replay
	// identically.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns a Config with the standard field and tuning values.
func DefaultConfig() Config {
	return Config{
		FieldWidth:   800,
		FieldHeight:  500,
		GoalHeight:   150,
		GoalDepth:    40,
		CornerRadius: 60,

		PlayersPerTeam: 3,

		PlayerRadius: 15,
		PlayerMass:   1.0,
		BallRadius:   10,
		BallMass:     0.5,

		MaxAcceleration: 0.5,
		PlayerMaxSpeed:  5.0,
		BallMaxSpeed:    12.0,
		Friction:        0.98,

		KickRange:         40,
		KickPower:         10,
		KickCooldownTicks: 30,

		WinScore:         5,
		MaxTicks:         9000,
		CelebrationTicks: 45,

		AgentTimeout: 100 * time.Millisecond,
		TickPeriod:   33 * time.Millisecond,

		Seed: 1,
	}
}

// Validate rejects configurations the engine cannot run. It is called once
// before the first tick; a non-nil error is fatal at match start.
func (c Config) Validate() error {
	switch {
	case c.FieldWidth <= 0 || c.FieldHeight <= 0:
		return fmt.Errorf("config: field dimensions must be positive, got %gx%g", c.FieldWidth, c.FieldHeight)
	case c.GoalHeight <= 0 || c.GoalHeight >= c.FieldHeight:
		return fmt.Errorf("config: goal height %g must be within (0, %g)", c.GoalHeight, c.FieldHeight)
	case c.GoalDepth <= 0:
		return fmt.Errorf("config: goal depth must be positive, got %g", c.GoalDepth)
	case c.CornerRadius < 0 || c.CornerRadius*2 > c.FieldHeight-c.GoalHeight:
		return fmt.Errorf("config: corner radius %g overlaps the goal mouth", c.CornerRadius)
	case c.PlayersPerTeam <= 0:
		return fmt.Errorf("config: players per team must be positive, got %d", c.PlayersPerTeam)
	case c.PlayerRadius <= 0 || c.BallRadius <= 0:
		return fmt.Errorf("config: body radii must be positive")
	case c.PlayerMass <= 0 || c.BallMass <= 0:
		return fmt.Errorf("config: body masses must be positive")
	case c.MaxAcceleration <= 0:
		return fmt.Errorf("config: max acceleration must be positive, got %g", c.MaxAcceleration)
	case c.PlayerMaxSpeed <= 0 || c.BallMaxSpeed <= 0:
		return fmt.Errorf("config: max speeds must be positive")
	case c.Friction <= 0 || c.Friction > 1:
		return fmt.Errorf("config: friction must be in (0, 1], got %g", c.Friction)
	case c.KickRange <= 0 || c.KickPower <= 0:
		return fmt.Errorf("config: kick range and power must be positive")
	case c.KickCooldownTicks < 0:
		return fmt.Errorf("config: kick cooldown must not be negative, got %d", c.KickCooldownTicks)
	case c.WinScore <= 0:
		return fmt.Errorf("config: win score must be positive, got %d", c.WinScore)
	case c.MaxTicks <= 0:
		return fmt.Errorf("config: max ticks must be positive, got %d", c.MaxTicks)
	case c.CelebrationTicks <= 0:
		return fmt.Errorf("config: celebration ticks must be positive, got %d", c.CelebrationTicks)
	case c.AgentTimeout <= 0:
		return fmt.Errorf("config: agent timeout must be positive, got %v", c.AgentTimeout)
	}
	return nil
}

// GoalTop returns the y coordinate of the upper edge of both goal mouths.
func (c Config) GoalTop() float64 { return c.FieldHeight/2 - c.GoalHeight/2 }

// GoalBottom returns the y coordinate of the lower edge of both goal mouths.
func (c Config) GoalBottom() float64 { return c.FieldHeight/2 + c.GoalHeight/2 }
