package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/replay"
)

var playInterval time.Duration // delay between steps during playback

// playCmd replays the step log one step per interval until the end or Ctrl-C
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Auto-play a simulation step by step",
	Run: func(cmd *cobra.Command, args []string) {
		in, err := loadInput()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		session, err := newSession(in)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := play(ctx, cmd.OutOrStdout(), session, playInterval); err != nil {
			if errors.Is(err, context.Canceled) {
				logrus.Warn("Playback stopped")
				return
			}
			logrus.Fatalf("Playback failed: %v", err)
		}
	},
}

// newSession loads in into a fresh session and starts it.
func newSession(in *runInput) (*replay.Session, error) {
	s := replay.NewSession()
	if err := s.SetAlgorithm(in.algorithm); err != nil {
		return nil, err
	}
	s.SetQuantum(in.quantum)
	if err := s.SetTraceLevel(in.trace); err != nil {
		return nil, err
	}
	for _, p := range in.processes {
		if err := s.AddProcess(p); err != nil {
			return nil, err
		}
	}
	if _, err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// play prints each step as the session advances, then the run summaries.
func play(ctx context.Context, w io.Writer, s *replay.Session, interval time.Duration) error {
	alg := s.Algorithm()
	outputTitle(w, alg.Label())
	err := s.Play(ctx, interval, func(index int, step sim.Step) {
		_, total := s.Position()
		outputStep(w, alg, indexedStep{Index: index, Step: step}, total)
	})
	if err != nil {
		return err
	}
	renderSummary(w, newRunResult(s.Log(), s.Trace()))
	_, _ = fmt.Fprintln(w)
	return nil
}

func init() {
	addInputFlags(playCmd)
	playCmd.Flags().DurationVar(&playInterval, "interval", 500*time.Millisecond, "Delay between steps")

	rootCmd.AddCommand(playCmd)
}
