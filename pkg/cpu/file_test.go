package cpu

import (
	"errors"
	"testing"
)

func TestFileRegisterAddressSpace(t *testing.T) {
	m := New([512]uint16{})

	// file 1: RTCC
	m.s.RTCC = 0x42
	if v, err := m.ReadFile(1); err != nil || v != 0x42 {
		t.Errorf("file 1 = %#02x, %v; want 0x42, nil", v, err)
	}
	if _, err := m.WriteFile(1, 0x10); err != nil {
		t.Fatalf("WriteFile(1): %v", err)
	}
	if m.s.RTCC != 0x10 {
		t.Errorf("RTCC after WriteFile(1) = %#02x, want 0x10", m.s.RTCC)
	}

	// file 2: PC low byte
	m.s.PC = 0x1AB
	if v, err := m.ReadFile(2); err != nil || v != 0xAB {
		t.Errorf("file 2 = %#02x, %v; want 0xAB, nil", v, err)
	}
	if _, err := m.WriteFile(2, 0x05); err != nil {
		t.Fatalf("WriteFile(2): %v", err)
	}
	if m.s.PC != 0x05 {
		t.Errorf("PC after WriteFile(2) = %#x, want 0x05", m.s.PC)
	}

	// file 3: status, top 5 bits always read as zero
	m.s.C, m.s.DC, m.s.Z = true, true, true
	if v, err := m.ReadFile(3); err != nil || v != 0x07 {
		t.Errorf("file 3 = %#02x, %v; want 0x07, nil", v, err)
	}
	if _, err := m.WriteFile(3, 0xFF); err != nil {
		t.Fatalf("WriteFile(3): %v", err)
	}
	if v, _ := m.ReadFile(3); v != 0x07 {
		t.Errorf("file 3 after writing 0xFF = %#02x, want 0x07 (high bits masked)", v)
	}

	// file 4: FSR readback, top 3 bits always set
	m.s.FSR = 0x05
	if v, err := m.ReadFile(4); err != nil || v != 0b1110_0101 {
		t.Errorf("file 4 = %#08b, %v; want 0b11100101, nil", v, err)
	}
	if _, err := m.WriteFile(4, 0xFF); err != nil {
		t.Fatalf("WriteFile(4): %v", err)
	}
	if m.s.FSR != 0x1F {
		t.Errorf("FSR after WriteFile(4, 0xFF) = %#02x, want 0x1F (low 5 bits only)", m.s.FSR)
	}
}

func TestFileIOPortsMaskByInput(t *testing.T) {
	m := New([512]uint16{})
	// file 5 = port A. Default input is all 1s (spec §3 Lifecycles).
	if _, err := m.WriteFile(5, 0xFF); err != nil {
		t.Fatalf("WriteFile(5): %v", err)
	}
	if v, _ := m.ReadFile(5); v != 0xFF {
		t.Errorf("port A = %#02x, want 0xFF with default input", v)
	}

	m.Input(0, 0, false)
	m.Input(0, 1, false)
	if v, _ := m.ReadFile(5); v != 0xFC {
		t.Errorf("port A = %#02x, want 0xFC after clearing input bits 0,1", v)
	}
}

func TestFileGPRAddressing(t *testing.T) {
	m := New([512]uint16{})
	if _, err := m.WriteFile(9, 0x11); err != nil {
		t.Fatalf("WriteFile(9): %v", err)
	}
	if _, err := m.WriteFile(31, 0x22); err != nil {
		t.Fatalf("WriteFile(31): %v", err)
	}
	if v, _ := m.ReadFile(9); v != 0x11 {
		t.Errorf("file 9 = %#02x, want 0x11", v)
	}
	if v, _ := m.ReadFile(31); v != 0x22 {
		t.Errorf("file 31 = %#02x, want 0x22", v)
	}
	if m.s.GPR[0] != 0x11 || m.s.GPR[22] != 0x22 {
		t.Errorf("GPR backing array = %v", m.s.GPR)
	}
}

func TestFileIndirectThroughFSR(t *testing.T) {
	m := New([512]uint16{})
	m.s.FSR = 12
	if _, err := m.WriteFile(0, 0x99); err != nil {
		t.Fatalf("WriteFile(0): %v", err)
	}
	if v, _ := m.ReadFile(12); v != 0x99 {
		t.Errorf("file 12 = %#02x, want 0x99 via indirect write", v)
	}
	if v, err := m.ReadFile(0); err != nil || v != 0x99 {
		t.Errorf("indirect read = %#02x, %v; want 0x99, nil", v, err)
	}
}

func TestFileIndirectZeroFsrIsPreconditionViolation(t *testing.T) {
	m := New([512]uint16{})
	m.s.FSR = 0
	_, err := m.ReadFile(0)
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("ReadFile(0) with FSR=0: err = %v, want ErrPreconditionViolation", err)
	}
	_, err = m.WriteFile(0, 1)
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Fatalf("WriteFile(0) with FSR=0: err = %v, want ErrPreconditionViolation", err)
	}
}

func TestWriteFileDestRoutesToW(t *testing.T) {
	m := New([512]uint16{})
	if _, err := m.WriteFileDest(9, 0, 0x7E); err != nil {
		t.Fatalf("WriteFileDest: %v", err)
	}
	if m.s.W != 0x7E {
		t.Errorf("W = %#02x, want 0x7E", m.s.W)
	}
	if m.s.GPR[0] != 0 {
		t.Errorf("file 9 = %#02x, want untouched (0)", m.s.GPR[0])
	}

	if _, err := m.WriteFileDest(9, 1, 0x3C); err != nil {
		t.Fatalf("WriteFileDest: %v", err)
	}
	if m.s.GPR[0] != 0x3C {
		t.Errorf("file 9 = %#02x, want 0x3C", m.s.GPR[0])
	}
}
