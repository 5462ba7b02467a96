// File: replay/replay.go

// Package replay records finished matches to a versioned JSON log that can
// be reloaded for playback or analysis, and keeps a long-term archive of
// results in sqlite.
package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lguibr/striker/game"
	"github.com/lguibr/striker/utils"
)

// Version tags the on-disk log format.
const Version = 1

// Replay is one recorded match: the configuration that produced it, the
// sampled snapshots in tick order, and the final tick count. With the same
// configuration the engine reproduces every tick in between, so sampling
// loses nothing.
type Replay struct {
	Version    int               `json:"version"`
	Config     utils.Config      `json:"config"`
	States     []game.MatchState `json:"states"`
	TotalTicks int               `json:"totalTicks"`
}

// Recorder samples published snapshots into a Replay. It implements
// game.Observer and is not safe for use from multiple goroutines; the
// controller publishes from a single goroutine, which is the intended
// caller.
type Recorder struct {
	interval int
	replay   Replay
	last     game.MatchState
	sampled  bool
}

// NewRecorder builds a recorder that keeps every interval-th snapshot
// (tick 0 included). An interval below 1 keeps every tick.
func NewRecorder(cfg utils.Config, interval int) *Recorder {
	if interval < 1 {
		interval = 1
	}
	return &Recorder{
		interval: interval,
		replay:   Replay{Version: Version, Config: cfg},
	}
}

// Observe samples the snapshot if it falls on the interval, and always
// remembers it as the latest so the final state makes it into the log even
// off-interval.
func (r *Recorder) Observe(state game.MatchState) {
	r.last = state
	r.sampled = state.Tick%r.interval == 0
	if r.sampled {
		r.replay.States = append(r.replay.States, state)
	}
}

// Replay finalises and returns the recording. The last observed snapshot is
// appended when sampling skipped it, so the log always ends on the final
// state.
func (r *Recorder) Replay() Replay {
	out := r.replay
	if !r.sampled && r.last.Tick > 0 {
		out.States = append(out.States, r.last)
	}
	out.TotalTicks = r.last.Tick
	return out
}

// Save writes the recording as indented JSON.
func (r *Recorder) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Replay()); err != nil {
		return fmt.Errorf("replay: save: %w", err)
	}
	return nil
}

// SaveFile writes the recording to path, replacing any existing file.
func (r *Recorder) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: save: %w", err)
	}
	defer f.Close()
	if err := r.Save(f); err != nil {
		return err
	}
	return f.Close()
}

// Load parses a recording and checks the format version.
func Load(rd io.Reader) (Replay, error) {
	var rep Replay
	if err := json.NewDecoder(rd).Decode(&rep); err != nil {
		return Replay{}, fmt.Errorf("replay: load: %w", err)
	}
	if rep.Version != Version {
		return Replay{}, fmt.Errorf("replay: load: version %d, want %d", rep.Version, Version)
	}
	if len(rep.States) == 0 {
		return Replay{}, fmt.Errorf("replay: load: no states")
	}
	return rep, nil
}

// LoadFile parses the recording at path.
func LoadFile(path string) (Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: load: %w", err)
	}
	defer f.Close()
	return Load(f)
}
