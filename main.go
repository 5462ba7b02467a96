// File: main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lguibr/striker/game"
	"github.com/lguibr/striker/render"
	"github.com/lguibr/striker/replay"
	"github.com/lguibr/striker/server"
	"github.com/lguibr/striker/utils"
)

func main() {
	var (
		teamA       = flag.String("team-a", "striker,chaser,goalie", "comma-separated agent lineup for team 0")
		teamB       = flag.String("team-b", "striker,chaser,goalie", "comma-separated agent lineup for team 1")
		seed        = flag.Int64("seed", utils.DefaultConfig().Seed, "match seed; equal seeds replay identically")
		winScore    = flag.Int("win-score", utils.DefaultConfig().WinScore, "goals needed to win")
		maxTicks    = flag.Int("max-ticks", utils.DefaultConfig().MaxTicks, "tick cutoff for a draw")
		live        = flag.Bool("render", false, "draw the match in the terminal")
		replayPath  = flag.String("replay", "", "write a replay log to this path")
		archivePath = flag.String("archive", "", "append the result to this sqlite archive")
		serveAddr   = flag.String("serve", "", "serve the match over websockets on this address (seats marked 'remote' go to clients)")
	)
	flag.Parse()

	cfg := utils.DefaultConfig()
	cfg.Seed = *seed
	cfg.WinScore = *winScore
	cfg.MaxTicks = *maxTicks

	if err := run(cfg, *teamA, *teamB, *live, *replayPath, *archivePath, *serveAddr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfg utils.Config, teamA, teamB string, live bool, replayPath, archivePath, serveAddr string) error {
	agents, remoteSeats, err := buildLineup(cfg, teamA, teamB)
	if err != nil {
		return err
	}
	if len(remoteSeats) > 0 && serveAddr == "" {
		return fmt.Errorf("lineup has remote seats but no -serve address")
	}

	var observers []game.Observer

	var recorder *replay.Recorder
	if replayPath != "" {
		recorder = replay.NewRecorder(cfg, 1)
		observers = append(observers, recorder)
	}

	if live {
		renderer := render.NewRenderer(cfg, os.Stdout, 100)
		renderer.Live = true
		observers = append(observers, renderer)
	}

	var srv *server.Server
	if serveAddr != "" {
		srv = server.New(cfg, remoteSeats)
		observers = append(observers, srv)
		go func() {
			fmt.Println("Serving match on", serveAddr)
			if err := http.ListenAndServe(serveAddr, srv.Mux()); err != nil {
				fmt.Println("ERROR: serve:", err)
				os.Exit(1)
			}
		}()
	}

	controller, err := game.NewController(cfg, agents, observers...)
	if err != nil {
		return err
	}

	result, err := runMatch(cfg, controller, live || serveAddr != "")
	if err != nil {
		return err
	}

	if srv != nil {
		srv.BroadcastResult(result)
	}
	if recorder != nil {
		if err := recorder.SaveFile(replayPath); err != nil {
			return err
		}
		fmt.Println("Replay written to", replayPath)
	}
	if archivePath != "" {
		if err := archiveResult(archivePath, cfg, result); err != nil {
			return err
		}
	}

	printResult(result)
	return nil
}

// runMatch drives the controller to the end, pacing ticks to the configured
// period when anything is watching live.
func runMatch(cfg utils.Config, controller *game.Controller, paced bool) (game.Result, error) {
	if !paced {
		return controller.Run()
	}
	ticker := time.NewTicker(cfg.TickPeriod)
	defer ticker.Stop()
	for controller.State().Phase != game.Finished {
		<-ticker.C
		if err := controller.Tick(); err != nil {
			return game.Result{}, err
		}
	}
	return controller.Result(), nil
}

// buildLineup instantiates the agents for both teams from their name lists.
// The name "remote" reserves the seat for a websocket client.
func buildLineup(cfg utils.Config, teamA, teamB string) ([]game.Agent, []*server.NetworkAgent, error) {
	namesA := strings.Split(teamA, ",")
	namesB := strings.Split(teamB, ",")
	if len(namesA) != cfg.PlayersPerTeam || len(namesB) != cfg.PlayersPerTeam {
		return nil, nil, fmt.Errorf("each team needs %d agents, got %d and %d",
			cfg.PlayersPerTeam, len(namesA), len(namesB))
	}

	var agents []game.Agent
	var remote []*server.NetworkAgent
	for seat, name := range append(namesA, namesB...) {
		team := game.Team(0)
		index := seat
		if seat >= cfg.PlayersPerTeam {
			team = 1
			index = seat - cfg.PlayersPerTeam
		}
		id := game.PlayerID{Team: team, Index: index}

		name = strings.TrimSpace(name)
		if name == "remote" {
			agent := server.NewNetworkAgent(id)
			remote = append(remote, agent)
			agents = append(agents, agent)
			continue
		}
		agent, err := game.NewAgent(name, id, cfg, cfg.Seed+int64(seat))
		if err != nil {
			return nil, nil, err
		}
		agents = append(agents, agent)
	}
	return agents, remote, nil
}

func archiveResult(path string, cfg utils.Config, result game.Result) error {
	archive, err := replay.OpenArchive(path)
	if err != nil {
		return err
	}
	defer archive.Close()
	if err := archive.SaveResult(cfg, result); err != nil {
		return err
	}
	fmt.Println("Result archived to", path)
	return nil
}

func printResult(result game.Result) {
	fmt.Printf("Final score: %d - %d after %d ticks\n", result.Score[0], result.Score[1], result.Ticks)
	switch result.Winner {
	case game.DrawResult:
		fmt.Println("Match drawn.")
	default:
		fmt.Printf("Team %d wins!\n", result.Winner)
	}
}
