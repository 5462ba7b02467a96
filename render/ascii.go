// File: render/ascii.go

// Package render draws match snapshots as ASCII frames for terminal
// playback.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lguibr/asciiring/helpers"

	"github.com/lguibr/striker/game"
	"github.com/lguibr/striker/utils"
)

// Glyphs per body kind. Team 0 plays left to right.
const (
	glyphTeam0 = 'o'
	glyphTeam1 = 'x'
	glyphBall  = '@'
	glyphTurf  = ' '
	glyphGoal  = ':'
)

// Renderer draws snapshots onto a fixed character grid. It implements
// game.Observer; with Live set it clears the terminal before every frame so
// the match plays in place.
type Renderer struct {
	cfg  utils.Config
	out  io.Writer
	cols int
	rows int

	// Live redraws over the previous frame instead of scrolling.
	Live bool
}

// NewRenderer builds a renderer with a cols-wide grid; the row count
// follows from the field's aspect ratio, halved because terminal cells are
// roughly twice as tall as they are wide.
func NewRenderer(cfg utils.Config, out io.Writer, cols int) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if cols < 20 {
		cols = 20
	}
	rows := int(cfg.FieldHeight / cfg.FieldWidth * float64(cols) / 2)
	if rows < 5 {
		rows = 5
	}
	return &Renderer{cfg: cfg, out: out, cols: cols, rows: rows}
}

// Observe draws one frame.
func (r *Renderer) Observe(state game.MatchState) {
	if r.Live {
		helpers.ClearScreen()
	}
	fmt.Fprint(r.out, r.Frame(state))
}

// Frame renders one snapshot to a string.
func (r *Renderer) Frame(state game.MatchState) string {
	grid := make([][]rune, r.rows)
	for y := range grid {
		grid[y] = make([]rune, r.cols)
		for x := range grid[y] {
			grid[y][x] = glyphTurf
		}
	}

	r.plot(grid, state.Ball.Pos, glyphBall)
	for _, p := range state.Players {
		glyph := rune(glyphTeam0)
		if p.ID.Team == 1 {
			glyph = glyphTeam1
		}
		r.plot(grid, p.Pos, glyph)
	}

	var b strings.Builder
	b.WriteString(r.scoreLine(state))
	b.WriteByte('\n')

	goalTopRow := r.toRow(r.cfg.GoalTop())
	goalBottomRow := r.toRow(r.cfg.GoalBottom())

	b.WriteByte('+')
	b.WriteString(strings.Repeat("-", r.cols))
	b.WriteString("+\n")
	for y, row := range grid {
		left, right := byte('|'), byte('|')
		if y >= goalTopRow && y <= goalBottomRow {
			left, right = glyphGoal, glyphGoal
		}
		b.WriteByte(left)
		b.WriteString(string(row))
		b.WriteByte(right)
		b.WriteByte('\n')
	}
	b.WriteByte('+')
	b.WriteString(strings.Repeat("-", r.cols))
	b.WriteString("+\n")
	return b.String()
}

func (r *Renderer) scoreLine(state game.MatchState) string {
	phase := string(state.Phase)
	if state.Phase == game.Celebrating {
		phase = fmt.Sprintf("%s (%d)", phase, state.CelebrationLeft)
	}
	return fmt.Sprintf("tick %5d  [o] %d - %d [x]  %s", state.Tick, state.Score[0], state.Score[1], phase)
}

// plot marks a field position on the grid, clamping bodies that are behind
// a goal line onto the nearest column.
func (r *Renderer) plot(grid [][]rune, pos utils.Vec, glyph rune) {
	col := int(pos.X / r.cfg.FieldWidth * float64(r.cols))
	row := r.toRow(pos.Y)
	if col < 0 {
		col = 0
	}
	if col >= r.cols {
		col = r.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= r.rows {
		row = r.rows - 1
	}
	grid[row][col] = glyph
}

func (r *Renderer) toRow(y float64) int {
	return int(y / r.cfg.FieldHeight * float64(r.rows))
}
