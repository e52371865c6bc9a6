// File: cmd/corun/switchcost.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/corun/control"
	"github.com/momentics/corun/coro"
)

var switchcostCmd = &cobra.Command{
	Use:   "switchcost",
	Short: "Measure the raw cost of a yield/resume context switch",
	RunE:  runSwitchcost,
}

func init() {
	switchcostCmd.Flags().Int("coroutines", 100, "coroutines in the ready queue")
	switchcostCmd.Flags().Int("yields", 1000, "yields per coroutine")
}

func runSwitchcost(cmd *cobra.Command, args []string) error {
	n, err := cmd.Flags().GetInt("coroutines")
	if err != nil {
		return err
	}
	yields, err := cmd.Flags().GetInt("yields")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m := control.NewMetrics()
	s := coro.NewScheduler(coro.WithConfig(cfg), coro.WithMetrics(m))
	defer s.Close()

	for i := 0; i < n; i++ {
		coro.Go(s, func(tk *coro.Task) error {
			for j := 0; j < yields; j++ {
				if err := tk.Yield(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	start := time.Now()
	if err := s.RunUntilIdle(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	switches := m.Get(control.MetricSwitches)
	fmt.Printf("%d switches in %v (%.0f ns/switch)\n",
		switches, elapsed, float64(elapsed.Nanoseconds())/float64(switches))
	printMetrics(m)
	return nil
}
