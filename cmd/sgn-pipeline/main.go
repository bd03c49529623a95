// Command sgn-pipeline is a thin boundary around core.Pipeline: it loads
// configuration, wires up the "Simple" reference pipeline
// (FakeSrc -> FakeTransform -> FakeSink) for demonstration, and runs it to
// completion. Real deployments are expected to replace buildPipeline with
// their own element graph; this command exists to exercise sgnconfig,
// sgnlog and cobra's CLI boundary end to end, not as a product in itself.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dataflowgraph/sgn/core"
	"github.com/dataflowgraph/sgn/elements/sinks"
	"github.com/dataflowgraph/sgn/elements/sources"
	"github.com/dataflowgraph/sgn/elements/transforms"
	"github.com/dataflowgraph/sgn/sgnconfig"
	"github.com/dataflowgraph/sgn/sgnlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var numFrames int

	cmd := &cobra.Command{
		Use:   "sgn-pipeline",
		Short: "Run an sgn dataflow pipeline to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sgnconfig.Load(configPath)
			if err != nil {
				return err
			}
			log := sgnlog.New("pipeline")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			p := buildPipeline(numFrames)
			log.Info().Int("queue_size", cfg.QueueSize).Msg("starting pipeline")
			if err := p.Run(ctx); err != nil {
				return fmt.Errorf("pipeline run failed: %w", err)
			}
			log.Info().Msg("pipeline reached end of stream")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	cmd.Flags().IntVar(&numFrames, "frames", 3, "number of frames FakeSrc emits before EOS")
	return cmd
}

// buildPipeline wires the reference Simple scenario described in this
// module's test suite: one source, one transform, one sink.
func buildPipeline(numFrames int) *core.Pipeline {
	p := core.NewPipeline()
	src := sources.NewFakeSrc("src1", []string{"H1"}, numFrames)
	trans := transforms.NewFakeTransform("trans1", []string{"H1"}, []string{"H1"})
	snk := sinks.NewFakeSink("snk1", []string{"H1"})

	_ = p.Insert(src, trans, snk)
	_ = p.Link(map[string]string{
		"trans1:sink:H1": "src1:src:H1",
		"snk1:sink:H1":   "trans1:src:H1",
	})
	return p
}
