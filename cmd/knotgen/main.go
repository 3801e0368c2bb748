package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Fatal().Err(err).Msg("knotgen failed")
	}
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "knotgen",
		Short: "Generate explicit wiring code for the knot/di helpers",
		Long: "knotgen emits Go source from small JSON specs: builder facades around\n" +
			"concrete services (facade) and composition-root functions that wire and\n" +
			"build a whole object graph (graph). Wiring stays explicit; the generator\n" +
			"only removes the boilerplate.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFacadeCmd(log), newGraphCmd(log))
	return root
}

func newFacadeCmd(log zerolog.Logger) *cobra.Command {
	var specPath, outPath string

	cmd := &cobra.Command{
		Use:   "facade",
		Short: "Generate a builder facade from a *.inject.json spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := genFacade(specPath, outPath); err != nil {
				return err
			}
			log.Info().Str("spec", specPath).Str("out", outPath).Msg("facade generated")
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "path to the facade spec (service.inject.json)")
	cmd.Flags().StringVar(&outPath, "out", "", "output .gen.go file path")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newGraphCmd(log zerolog.Logger) *cobra.Command {
	var specPath, outPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate composition-root functions from a graph.json spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := genGraph(specPath, outPath); err != nil {
				return err
			}
			log.Info().Str("spec", specPath).Str("out", outPath).Msg("graph generated")
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "path to the graph spec (graph.json)")
	cmd.Flags().StringVar(&outPath, "out", "", "output .gen.go file path")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
