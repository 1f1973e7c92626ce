// Command pic1650 is the PIC1650 emulator and disassembler CLI: a silent
// executor, a CSV trace executor, and a standalone disassembler (spec §6).
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/oisee/pic1650emu/pkg/cpu"
	"github.com/oisee/pic1650emu/pkg/inst"
	"github.com/oisee/pic1650emu/pkg/rom"
	"github.com/oisee/pic1650emu/pkg/trace"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pic1650",
		Short: "PIC1650 12-bit microcontroller emulator and disassembler",
	}

	var romPath string
	var maxTicks int
	var untilPC int
	var padShortRom bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a ROM image silently until a termination condition is met",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(romPath, padShortRom)
			if err != nil {
				return err
			}
			return runUntil(m, maxTicks, untilPC)
		},
	}
	addRomFlags(runCmd, &romPath, &maxTicks, &untilPC, &padShortRom)

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "Run a ROM image, writing a CSV trace row per tick to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(romPath, padShortRom)
			if err != nil {
				return err
			}
			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()
			emitter, err := trace.New(m, out)
			if err != nil {
				return err
			}
			return runUntilFunc(maxTicks, untilPC, m, emitter.Emit)
		},
	}
	addRomFlags(traceCmd, &romPath, &maxTicks, &untilPC, &padShortRom)

	disasmCmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble a ROM image, one line per word, to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeFn, err := openRomSource(romPath)
			if err != nil {
				return err
			}
			defer closeFn()

			words, err := rom.Load(in)
			if err != nil {
				return err
			}

			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()
			for pc, word := range words {
				instr, err := inst.Decode(word)
				if err != nil {
					fmt.Fprintf(out, "%3d x%03X: %v\n", pc, pc, err)
					continue
				}
				fmt.Fprintf(out, "%3d x%03X: %s", pc, pc, inst.Disassemble(instr))
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&romPath, "rom", "", "ROM image path (default: stdin)")

	rootCmd.AddCommand(runCmd, traceCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRomFlags(cmd *cobra.Command, romPath *string, maxTicks, untilPC *int, padShortRom *bool) {
	cmd.Flags().StringVar(romPath, "rom", "", "ROM image path (default: stdin)")
	cmd.Flags().IntVar(maxTicks, "max-ticks", 0, "stop after this many ticks (0 = unbounded)")
	cmd.Flags().IntVar(untilPC, "until-pc", -1, "stop once PC equals this value (-1 = disabled)")
	cmd.Flags().BoolVar(padShortRom, "pad-short-rom", false, "zero-pad a ROM image shorter than 1024 bytes instead of rejecting it")
}

func openRomSource(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rom: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func loadMachine(romPath string, pad bool) (*cpu.Machine, error) {
	in, closeFn, err := openRomSource(romPath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var words [rom.Words]uint16
	if pad {
		words, err = rom.LoadPadded(in)
	} else {
		words, err = rom.Load(in)
	}
	if err != nil {
		return nil, err
	}
	return cpu.New(words), nil
}

// runUntil ticks m until maxTicks have executed or PC equals untilPC.
func runUntil(m *cpu.Machine, maxTicks, untilPC int) error {
	return runUntilFunc(maxTicks, untilPC, m, m.Tick)
}

// runUntilFunc shares the termination logic between run and trace: both
// tick a fixed number of times or until PC matches, stopping early and
// returning the error if a tick reports an illegal instruction or a
// precondition violation (spec §6: "non-zero if the CPU reports an illegal
// instruction").
func runUntilFunc(maxTicks, untilPC int, m *cpu.Machine, tick func() error) error {
	for i := 0; maxTicks == 0 || i < maxTicks; i++ {
		if untilPC >= 0 && int(m.PC()) == untilPC {
			return nil
		}
		if err := tick(); err != nil {
			return err
		}
	}
	return nil
}
