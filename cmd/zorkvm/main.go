/******
This file is part of Vaelen/ZorkVM.

Copyright 2017, Andrew Young <andrew@vaelen.org>

    Vaelen/ZorkVM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

    Vaelen/ZorkVM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
along with Vaelen/ZorkVM.  If not, see <http://www.gnu.org/licenses/>.
******/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vaelen/zorkvm"
	"github.com/vaelen/zorkvm/server"
	"github.com/vaelen/zorkvm/worldgen"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "zorkvm",
	Short: "ZorkVM: a transactional interactive-fiction runtime",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.AddCommand(serveCmd, replayCmd, checkCmd)
}

func newLogger() *zap.SugaredLogger {
	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	return log.Sugar()
}

func newEngineComponents() (*zorkvm.ComputedProperties, *zorkvm.HookRegistry, map[zorkvm.Intent]zorkvm.HandlerFunc) {
	comp := zorkvm.NewComputedProperties()
	_, hooks := worldgen.Fixture()
	return comp, hooks, zorkvm.DefaultHandlers
}

// newScheduler registers the fixture's daemons: the illustrative sword-glow
// daemon, the thief, and the troll's combat round, scoped to one connection's
// Engine.
func newScheduler(e *zorkvm.Engine, comp *zorkvm.ComputedProperties) *zorkvm.Scheduler {
	scheduler := zorkvm.NewScheduler(e)
	registry := zorkvm.NewCombatRegistry()
	registry.Register(worldgen.Troll, worldgen.TrollCombatSystem())

	scheduler.Register("swordGlow", 1, true, zorkvm.SwordGlowDaemon(comp))
	scheduler.Register("thief", 1, true, worldgen.ThiefDaemon(comp))
	scheduler.Register(zorkvm.CombatDaemonID(worldgen.Troll), 1, false, zorkvm.CombatDaemon(comp, registry, worldgen.Troll))
	return scheduler
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the telnet server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		cfg, err := zorkvm.LoadConfig(configPath)
		if err != nil {
			return err
		}

		comp, hooks, handlers := newEngineComponents()
		newState := func() *zorkvm.GameState {
			state, _ := worldgen.Fixture()
			state.RandSeed = cfg.RandSeed
			return state
		}

		srv := server.NewServer(cfg, newState, comp, hooks, handlers, newScheduler, log)
		return srv.Start(cfg.ListenAddress)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay [save-directory]",
	Short: "Load a save and print its change history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()
		state, err := zorkvm.LoadGame(args[0], log)
		if err != nil {
			return err
		}
		for i, c := range state.ChangeHistory {
			fmt.Printf("%d: %#v\n", i, c)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build the fixture world and report its shape without serving it",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, hooks := worldgen.Fixture()
		fmt.Printf("locations: %d\n", len(state.Locations))
		fmt.Printf("items: %d\n", len(state.Items))
		_ = hooks
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
