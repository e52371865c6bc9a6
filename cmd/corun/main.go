// File: cmd/corun/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// corun is a small demo and measurement harness for the coroutine
// runtime. Each subcommand builds a scheduler, runs a workload and
// prints the metrics snapshot.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/momentics/corun/control"
)

var rootCmd = &cobra.Command{
	Use:   "corun",
	Short: "Cooperative coroutine runtime demos",
	Long:  "corun runs demo workloads on the cooperative scheduler and reports its counters.",
}

func main() {
	rootCmd.AddCommand(pingpongCmd)
	rootCmd.AddCommand(faninCmd)
	rootCmd.AddCommand(switchcostCmd)
	rootCmd.PersistentFlags().String("config", "", "TOML tuning file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the tuning config, applying the --config file when
// one was given.
func loadConfig(cmd *cobra.Command) (*control.Config, error) {
	cfg := control.NewConfig()
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.FromTOML(path); err != nil {
			return nil, fmt.Errorf("load tuning: %w", err)
		}
	}
	return cfg, nil
}

// printMetrics dumps the counter snapshot in stable order.
func printMetrics(m *control.Metrics) {
	snap := m.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-16s %d\n", name, snap[name])
	}
}
