// File: game/state.go
package game

import (
	"math"
	"math/rand"

	"github.com/lguibr/striker/utils"
)

// Phase describes where the match is in its lifecycle.
type Phase string

const (
	Playing     Phase = "playing"
	Celebrating Phase = "celebrating"
	Finished    Phase = "finished"
)

// Team identifies a side. Team 0 defends the left goal, team 1 the right.
type Team int

// PlayerID identifies one player for the whole match.
type PlayerID struct {
	Team  Team `json:"team"`
	Index int  `json:"index"`
}

// NoPossession marks a ball nobody touched recently.
const NoPossession = -1

// PlayerState is an immutable snapshot of one player at one tick. A new
// value is produced every tick; consumers never see it change underneath
// them.
type PlayerState struct {
	ID           PlayerID  `json:"id"`
	Pos          utils.Vec `json:"pos"`
	Vel          utils.Vec `json:"vel"`
	KickCooldown int       `json:"kickCooldown"`
	Frozen       bool      `json:"frozen"`
}

// CanKick reports whether the player's kick cooldown has expired.
func (p PlayerState) CanKick() bool { return p.KickCooldown == 0 }

// BallState is an immutable snapshot of the ball. Possession is an advisory
// hint only: the slot (in MatchState.Players order) of the last player to
// kick the ball, or NoPossession.
type BallState struct {
	Pos        utils.Vec `json:"pos"`
	Vel        utils.Vec `json:"vel"`
	Possession int       `json:"possession"`
}

// MatchState is the complete snapshot of a match at one tick. Player order
// is fixed for the whole match: team 0 slots first, then team 1, each in
// index order. All physics and broadcast ordering derives from this slice
// order, never from map iteration or response arrival.
type MatchState struct {
	Players         []PlayerState `json:"players"`
	Ball            BallState     `json:"ball"`
	Score           [2]int        `json:"score"`
	Tick            int           `json:"tick"`
	Phase           Phase         `json:"phase"`
	CelebrationLeft int           `json:"celebrationLeft"`
}

// Player returns the snapshot for the given identity.
func (s MatchState) Player(id PlayerID) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerState{}, false
}

// TeamPlayers returns the snapshots for one side, in index order.
func (s MatchState) TeamPlayers(team Team) []PlayerState {
	out := make([]PlayerState, 0, len(s.Players))
	for _, p := range s.Players {
		if p.ID.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// Equal compares two snapshots by value.
func (s MatchState) Equal(o MatchState) bool {
	if len(s.Players) != len(o.Players) ||
		s.Ball != o.Ball ||
		s.Score != o.Score ||
		s.Tick != o.Tick ||
		s.Phase != o.Phase ||
		s.CelebrationLeft != o.CelebrationLeft {
		return false
	}
	for i := range s.Players {
		if s.Players[i] != o.Players[i] {
			return false
		}
	}
	return true
}

// clone returns a deep copy whose player slice the caller may mutate while
// assembling the next snapshot.
func (s MatchState) clone() MatchState {
	next := s
	next.Players = make([]PlayerState, len(s.Players))
	copy(next.Players, s.Players)
	return next
}

// NewMatchState builds the tick-zero snapshot: both teams in kickoff
// formation and the ball at the centre spot with a seeded kickoff velocity.
func NewMatchState(cfg utils.Config, rng *rand.Rand) MatchState {
	players := make([]PlayerState, 0, cfg.PlayersPerTeam*2)
	for team := Team(0); team < 2; team++ {
		for i := 0; i < cfg.PlayersPerTeam; i++ {
			players = append(players, PlayerState{
				ID:  PlayerID{Team: team, Index: i},
				Pos: kickoffPosition(cfg, team, i),
			})
		}
	}
	return MatchState{
		Players: players,
		Ball: BallState{
			Pos:        utils.Vec{X: cfg.FieldWidth / 2, Y: cfg.FieldHeight / 2},
			Vel:        kickoffBallVelocity(rng),
			Possession: NoPossession,
		},
		Phase: Playing,
	}
}

// kickoffPosition places a team in a single column on its own half, spread
// evenly across the field height. Index 0 sits nearest its own goal.
func kickoffPosition(cfg utils.Config, team Team, index int) utils.Vec {
	x := cfg.FieldWidth * 0.25
	if team == 1 {
		x = cfg.FieldWidth * 0.75
	}
	step := cfg.FieldHeight / float64(cfg.PlayersPerTeam+1)
	return utils.Vec{X: x, Y: step * float64(index+1)}
}

// kickoffBallVelocity rolls the ball out in a random direction at a modest
// speed, the way the centre pass starts play.
func kickoffBallVelocity(rng *rand.Rand) utils.Vec {
	if rng == nil {
		return utils.Vec{}
	}
	angle := rng.Float64() * 2 * math.Pi
	speed := 2.0 + rng.Float64()*3.0
	return utils.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}
