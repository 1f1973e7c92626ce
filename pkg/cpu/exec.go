package cpu

import "github.com/oisee/pic1650emu/pkg/inst"

// Exec applies a decoded instruction's effect to m (spec §4.3, §4.4). It is
// the second half of the fetch/decode/execute tick: Machine.Tick calls
// inst.Decode then hands the result here. Every ALU instruction computes on
// 8-bit values mod 256 via ordinary uint8 arithmetic wraparound, and stores
// through WriteFile/WriteFileDest so a status-file write can feed back into
// the Z flag (spec §4.3).
func Exec(m *Machine, instr inst.Instruction) error {
	s := &m.s
	switch instr.Op {
	case inst.NOP:
		// no effect

	case inst.MOVWF:
		if _, err := m.WriteFile(instr.F, s.W); err != nil {
			return err
		}

	case inst.CLRW:
		s.W = 0
		s.Z = true

	case inst.CLRF:
		if _, err := m.WriteFile(instr.F, 0); err != nil {
			return err
		}
		s.Z = true

	case inst.SUBWF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		s.C = s.W <= v
		s.DC = (s.W & 0xF) <= (v & 0xF)
		written, err := m.WriteFileDest(instr.F, instr.D, v-s.W)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.DECF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v-1)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.IORWF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v|s.W)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.ANDWF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v&s.W)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.XORWF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v^s.W)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.ADDWF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		s.C = uint16(s.W)+uint16(v) > 0xFF
		s.DC = (s.W&0xF)+(v&0xF) > 0xF
		written, err := m.WriteFileDest(instr.F, instr.D, v+s.W)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.MOVF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.COMF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, ^v)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.INCF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v+1)
		if err != nil {
			return err
		}
		s.Z = written == 0

	case inst.DECFSZ:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v-1)
		if err != nil {
			return err
		}
		if written == 0 {
			m.skip()
		}

	case inst.RRF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		s.C = v&1 != 0
		if _, err := m.WriteFileDest(instr.F, instr.D, (v>>1)|(boolBit(s.C)<<7)); err != nil {
			return err
		}

	case inst.RLF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		s.C = v>>7 != 0
		if _, err := m.WriteFileDest(instr.F, instr.D, (v<<1)|boolBit(s.C)); err != nil {
			return err
		}

	case inst.SWAPF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		if _, err := m.WriteFileDest(instr.F, instr.D, (v<<4)|(v>>4)); err != nil {
			return err
		}

	case inst.INCFSZ:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		written, err := m.WriteFileDest(instr.F, instr.D, v+1)
		if err != nil {
			return err
		}
		if written == 0 {
			m.skip()
		}

	case inst.BCF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		if _, err := m.WriteFile(instr.F, v&^(1<<instr.B)); err != nil {
			return err
		}

	case inst.BSF:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		if _, err := m.WriteFile(instr.F, v|(1<<instr.B)); err != nil {
			return err
		}

	case inst.BTFSC:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		if v&(1<<instr.B) == 0 {
			m.skip()
		}

	case inst.BTFSS:
		v, err := m.ReadFile(instr.F)
		if err != nil {
			return err
		}
		if v&(1<<instr.B) != 0 {
			m.skip()
		}

	case inst.RETLW:
		s.W = uint8(instr.K)
		// Mask to 9 bits: on underflow Stack[0] is the 0xFFFF sentinel, and
		// an unmasked load would make the next Tick's ROM fetch index out of
		// range. Masking lands PC on 0x1FF, the reset vector (spec §4.4, §9).
		s.PC = s.Stack[0] & 0x1FF
		s.Stack[0] = s.Stack[1]
		s.Stack[1] = stackEmpty

	case inst.CALL:
		s.Stack[1] = s.Stack[0]
		s.Stack[0] = s.PC & 0x1FF
		s.PC = instr.K

	case inst.GOTO:
		s.PC = instr.K

	case inst.MOVLW:
		s.W = uint8(instr.K)

	case inst.IORLW:
		s.W = s.W | uint8(instr.K)
		s.Z = s.W == 0

	case inst.ANDLW:
		s.W = s.W & uint8(instr.K)
		s.Z = s.W == 0

	case inst.XORLW:
		s.W = s.W ^ uint8(instr.K)
		s.Z = s.W == 0
	}
	return nil
}

// skip advances PC past the following instruction, the shared effect of
// DECFSZ/INCFSZ/BTFSC/BTFSS (spec §4.4).
func (m *Machine) skip() {
	m.s.PC = (m.s.PC + 1) & 0x1FF
}

// boolBit returns 1 if b is true, else 0.
func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
