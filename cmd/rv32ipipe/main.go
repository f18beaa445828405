// Package main is the rv32ipipe command-line front end: it loads a raw
// instruction image, runs it to completion on the pipeline, and prints
// the resulting register and memory state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kestrelsim/rv32ipipe/display"
	"github.com/kestrelsim/rv32ipipe/loader"
	"github.com/kestrelsim/rv32ipipe/pipeline"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rv32ipipe",
		Short: "A cycle-accurate 5-stage RV32I pipeline emulator",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var memDumpBase uint32
	var memDumpWords int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a raw instruction image and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romWords, err := loader.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("rv32ipipe: %w", err)
			}

			sys := pipeline.NewSystem(romWords)
			if err := sys.Run(len(romWords)); err != nil {
				return fmt.Errorf("rv32ipipe: %w", err)
			}

			highlight := !noColor && term.IsTerminal(int(os.Stdout.Fd()))

			out := display.FormatRegisters(sys.RegisterDump())
			out += "-----\n"
			out += display.FormatMemoryWords(sys.MemoryWindow(memDumpBase, memDumpWords), memDumpBase)

			if highlight {
				out = "\033[1m" + out + "\033[0m"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&memDumpBase, "mem-dump-base", 0x8000_0000, "Base address of the memory window to print")
	cmd.Flags().IntVar(&memDumpWords, "mem-dump-words", 132, "Number of words in the memory window to print")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal highlighting of the dump even on a TTY")

	return cmd
}
