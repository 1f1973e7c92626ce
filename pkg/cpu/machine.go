// Package cpu implements the PIC1650 CPU core: the file-register address
// space, the ALU/flag unit, and the fetch/decode/execute tick loop. It is
// strictly single-threaded and synchronous — each Tick is atomic from the
// perspective of an external observer.
package cpu

import "github.com/oisee/pic1650emu/pkg/inst"

// Machine is one PIC1650 emulator instance: its ROM snapshot plus all
// mutable CPU state. Independent Machine instances share no state.
type Machine struct {
	rom [512]uint16
	s   State
}

// New constructs a Machine from a 512-word ROM image, with state reset to
// power-on values.
func New(rom [512]uint16) *Machine {
	return &Machine{rom: rom, s: NewState()}
}

// Snapshot is a read-only copy of the full CPU state, used by the trace
// emitter and by tests to inspect state without exposing mutable internals.
type Snapshot struct {
	PC       uint16
	W        uint8
	RTCC     uint8
	FSR      uint8
	C, DC, Z bool
	GPR      [23]uint8
	Output   [4]uint8
	Stack    [2]uint16
}

// Snapshot returns the current CPU state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		PC:     m.s.PC,
		W:      m.s.W,
		RTCC:   m.s.RTCC,
		FSR:    m.s.FSR,
		C:      m.s.C,
		DC:     m.s.DC,
		Z:      m.s.Z,
		GPR:    m.s.GPR,
		Output: m.s.Output,
		Stack:  m.s.Stack,
	}
}

// PC returns the current program counter.
func (m *Machine) PC() uint16 { return m.s.PC }

// OutputLatch returns output port i (0=A, 1=B, 2=C, 3=D).
func (m *Machine) OutputLatch(i int) uint8 { return m.s.Output[i] }

// Input sets or clears input line bit of port (4 ports, 8 bits each). port
// must be in [0, 4) and bit in [0, 8); neither is masked, so a larger port
// panics on the array index and a bit of 8 or more changes nothing.
func (m *Machine) Input(port, bit int, value bool) {
	mask := uint8(1) << uint(bit)
	if value {
		m.s.Input[port] |= mask
	} else {
		m.s.Input[port] &^= mask
	}
}

// Opcode returns the raw 12-bit word at ROM[pc], for use by trace/disasm
// callers that want to inspect the instruction about to execute.
func (m *Machine) Opcode(pc uint16) uint16 { return m.rom[pc&0x1FF] }

// Tick executes exactly one instruction (spec §4.5):
//  1. RTCC += 1 (mod 256), unconditionally.
//  2. Fetch op = ROM[PC].
//  3. PC = (PC + 1) mod 512.
//  4. Decode and apply op's effect (which may further modify PC).
func (m *Machine) Tick() error {
	m.s.RTCC++

	op := m.rom[m.s.PC]
	m.s.PC = (m.s.PC + 1) & 0x1FF

	instr, err := inst.Decode(op)
	if err != nil {
		return err
	}
	return Exec(m, instr)
}
