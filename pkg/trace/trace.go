// Package trace wraps a cpu.Machine with a CSV trace emitter. The emitter is
// optional: a Machine can be driven directly via Tick without ever
// constructing an Emitter.
package trace

import (
	"fmt"
	"io"

	"github.com/oisee/pic1650emu/pkg/cpu"
	"github.com/oisee/pic1650emu/pkg/inst"
)

// header lists the CSV columns in the fixed order taken verbatim from the
// column layout of the reference emulator's trace output.
const header = "cnt,starting_pc,rtcc,pc,C,DC,Z,fsr,w,RA,RB,RC,RD," +
	"f9,f10,f11,r12,f13,f14,f15,f16,f17,f18,f19,f20,f21,f22,f23,f24,f25,f26,f27,f28,r29,f30,f31," +
	"stack0,stack1,opcode,decoded\n"

// Emitter drives a *cpu.Machine one tick at a time and writes one CSV row
// per tick to a borrowed io.Writer sink. The header row is written once, at
// construction.
type Emitter struct {
	m     *cpu.Machine
	w     io.Writer
	cycle uint64
}

// New wraps m and writes the CSV header to w immediately.
func New(m *cpu.Machine, w io.Writer) (*Emitter, error) {
	if _, err := io.WriteString(w, header); err != nil {
		return nil, err
	}
	return &Emitter{m: m, w: w}, nil
}

// Emit executes one tick on the wrapped machine and writes the resulting
// CSV row. The row captures the instruction as it looked *before* the tick
// (starting PC, opcode, disassembly) alongside the state as it looks after.
func (e *Emitter) Emit() error {
	startingPC := e.m.PC()
	opcode := e.m.Opcode(startingPC)
	decoded, decodeErr := inst.Decode(opcode)
	var disasm string
	if decodeErr == nil {
		disasm = inst.Disassemble(decoded)
	}

	if err := e.m.Tick(); err != nil {
		return err
	}

	snap := e.m.Snapshot()
	_, err := fmt.Fprintf(e.w, "%d,%d,%d,%d,%d,%d,%d,%d,%d,0b%08b,0b%08b,0b%08b,0b%08b,",
		e.cycle, startingPC, snap.RTCC, snap.PC,
		boolCol(snap.C), boolCol(snap.DC), boolCol(snap.Z),
		snap.FSR, snap.W,
		snap.Output[0], snap.Output[1], snap.Output[2], snap.Output[3])
	if err != nil {
		return err
	}
	for _, g := range snap.GPR {
		if _, err := fmt.Fprintf(e.w, "%d,", g); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(e.w, "%d,%d,0b%012b,%s", snap.Stack[0], snap.Stack[1], opcode&0xFFF, disasm)
	if err != nil {
		return err
	}
	e.cycle++
	return nil
}

func boolCol(b bool) int {
	if b {
		return 1
	}
	return 0
}
