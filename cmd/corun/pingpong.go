// File: cmd/corun/pingpong.go
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

var pingpongCmd = &cobra.Command{
	Use:   "pingpong",
	Short: "Bounce values between two coroutines over rendezvous channels",
	RunE:  runPingpong,
}

func init() {
	pingpongCmd.Flags().Int("rounds", 100000, "round trips to perform")
}

func runPingpong(cmd *cobra.Command, args []string) error {
	rounds, err := cmd.Flags().GetInt("rounds")
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

	ping := channel.New[int](s, 0)
	pong := channel.New[int](s, 0)

	coro.Go(s, func(tk *coro.Task) error {
		for i := 0; i < rounds; i++ {
			if err := ping.Send(tk, i); err != nil {
				return err
			}
			if _, err := pong.Recv(tk); err != nil {
				return err
			}
		}
		return nil
	})
	coro.Go(s, func(tk *coro.Task) error {
		for i := 0; i < rounds; i++ {
			v, err := ping.Recv(tk)
			if err != nil {
				return err
			}
			if err := pong.Send(tk, v); err != nil {
				return err
			}
		}
		return nil
	})

	start := time.Now()
	if err := s.RunUntilIdle(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%d round trips in %v (%.0f ns/round)\n",
		rounds, elapsed, float64(elapsed.Nanoseconds())/float64(rounds))
	printMetrics(m)
	return nil
}
