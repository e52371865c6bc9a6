// File: cmd/corun/fanin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/corun/channel"
	"github.com/momentics/corun/control"
	"github.com/momentics/corun/coro"
)

var faninCmd = &cobra.Command{
	Use:   "fanin",
	Short: "Merge several producer coroutines into one consumer via select",
	RunE:  runFanin,
}

func init() {
	faninCmd.Flags().Int("producers", 4, "producer coroutines")
	faninCmd.Flags().Int("items", 10000, "items per producer")
}

func runFanin(cmd *cobra.Command, args []string) error {
	producers, err := cmd.Flags().GetInt("producers")
	if err != nil {
		return err
	}
	items, err := cmd.Flags().GetInt("items")
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

	chans := make([]*channel.Channel[int], producers)
	for i := range chans {
		chans[i] = channel.New[int](s, -1) // buffered per the tuning hint
	}

	for i, ch := range chans {
		base := i * items
		src := ch
		coro.Go(s, func(tk *coro.Task) error {
			for j := 0; j < items; j++ {
				if err := src.Send(tk, base+j); err != nil {
					return err
				}
			}
			return src.Close()
		})
	}

	var total, sum int
	coro.Go(s, func(tk *coro.Task) error {
		live := append([]*channel.Channel[int]{}, chans...)
		for len(live) > 0 {
			cases := make([]channel.Case, len(live))
			for i, ch := range live {
				cases[i] = channel.RecvCase(ch)
			}
			idx, v, err := channel.Select(tk, cases...)
			if err != nil {
				// A drained closed producer leaves the merge set.
				live = append(live[:idx], live[idx+1:]...)
				continue
			}
			total++
			sum += v.(int)
		}
		return nil
	})

	start := time.Now()
	if err := s.RunUntilIdle(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	want := producers * items
	fmt.Printf("merged %d/%d items (sum %d) in %v\n", total, want, sum, elapsed)
	printMetrics(m)
	return nil
}
