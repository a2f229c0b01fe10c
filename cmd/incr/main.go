// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"unicode"

	"github.com/mdhender/incr"
	"github.com/mdhender/incr/pipelines/feeder"
	"github.com/spf13/cobra"
)

func main() {
	var cmdRoot = &cobra.Command{
		Use:   "incr",
		Short: "incremental parser runner",
		Long:  `Incr feeds input files through incremental parsers and streams out partial results.`,
	}
	cmdRoot.PersistentFlags().Bool("verbose", false, "log more information")
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdVersion())

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdParse() *cobra.Command {
	var grammarName string
	var chunkSize int
	var cmd = &cobra.Command{
		Use:   "parse <input-file>",
		Short: "parse a file incrementally with a built-in grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var logger *slog.Logger
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			p, err := grammar(grammarName)
			if err != nil {
				return err
			}
			svc := feeder.NewService[[]rune](chunkSize, logger)
			out, err := svc.Run(cmd.Context(), incr.SliceMonoid[rune]{}, p, args[0], printSink{})
			if err != nil {
				return fmt.Errorf("%s: %w", feeder.ErrorCode(err), err)
			}
			fmt.Printf("value:    %q\n", string(out.Value))
			fmt.Printf("leftover: %q\n", string(out.Leftover))
			return nil
		},
	}
	cmd.Flags().StringVar(&grammarName, "grammar", "text", "grammar to run (digits, word, text)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", feeder.DefaultChunkSize, "runes fed per chunk")
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(incr.Version().String())
				return nil
			}
			fmt.Println(incr.Version().Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}

// printSink writes each streamed partial result to stdout.
type printSink struct{}

func (printSink) Partial(_ context.Context, v []rune) {
	fmt.Printf("partial:  %q\n", string(v))
}

func grammar(name string) (incr.Parser[rune, []rune], error) {
	switch name {
	case "digits":
		return incr.While(unicode.IsDigit), nil
	case "word":
		return incr.While1(unicode.IsLetter), nil
	case "text":
		return incr.AcceptAll[rune](), nil
	}
	return nil, fmt.Errorf("unknown grammar %q", name)
}
