package cpu

// ReadFile reads the byte at virtual file address f (spec §4.2). f must be
// in [0, 32); callers within this package only ever pass decoded F fields,
// which the decoder already constrains to 5 bits.
func (m *Machine) ReadFile(f uint8) (uint8, error) {
	switch {
	case f == 0:
		if m.s.FSR == 0 {
			return 0, &preconditionViolationError{file: f}
		}
		return m.ReadFile(m.s.FSR)
	case f == 1:
		return m.s.RTCC, nil
	case f == 2:
		return uint8(m.s.PC & 0xFF), nil
	case f == 3:
		return m.s.statusByte(), nil
	case f == 4:
		return 0b1110_0000 | (m.s.FSR & 0x1F), nil
	case f >= 5 && f <= 8:
		port := f - 5
		return m.s.Output[port] & m.s.Input[port], nil
	default:
		return m.s.GPR[f-9], nil
	}
}

// WriteFile stores x at virtual file address f and returns the byte actually
// stored (which may differ from x, e.g. the masked status or FSR value).
func (m *Machine) WriteFile(f uint8, x uint8) (uint8, error) {
	switch {
	case f == 0:
		if m.s.FSR == 0 {
			return 0, &preconditionViolationError{file: f}
		}
		return m.WriteFile(m.s.FSR, x)
	case f == 1:
		m.s.RTCC = x
		return m.s.RTCC, nil
	case f == 2:
		m.s.PC = uint16(x)
		return x, nil
	case f == 3:
		m.s.setStatusByte(x & 0x7)
		return m.s.statusByte(), nil
	case f == 4:
		m.s.FSR = x & 0x1F
		return m.s.FSR, nil
	case f >= 5 && f <= 8:
		port := f - 5
		m.s.Output[port] = x
		return x, nil
	default:
		m.s.GPR[f-9] = x
		return x, nil
	}
}

// WriteFileDest routes x to W when d == 0, or to file f otherwise (spec
// §4.2's three-argument write_file). It returns the byte actually stored,
// which is what ALU instructions use to compute the Z flag.
func (m *Machine) WriteFileDest(f, d, x uint8) (uint8, error) {
	if d == 0 {
		m.s.W = x
		return x, nil
	}
	return m.WriteFile(f, x)
}
