package cpu

import "mos6502/mask"

// The processor status register P packs eight flags into one byte in
// the classic order, bit 7 down to bit 0: N V U B D I Z C. mask's
// 1-indexed bit positions line up directly: N is position 1 (the
// MSB), C is position 8 (the LSB).

func (c *CPU) Negative() bool { return mask.IsSet(c.P, mask.I1) }
func (c *CPU) Overflow() bool { return mask.IsSet(c.P, mask.I2) }
func (c *CPU) Break() bool    { return mask.IsSet(c.P, mask.I4) }
func (c *CPU) Decimal() bool  { return mask.IsSet(c.P, mask.I5) }
func (c *CPU) IrqDisable() bool { return mask.IsSet(c.P, mask.I6) }
func (c *CPU) Zero() bool     { return mask.IsSet(c.P, mask.I7) }
func (c *CPU) Carry() bool    { return mask.IsSet(c.P, mask.I8) }

func (c *CPU) SetNegative(on bool)   { c.setFlagN(on) }
func (c *CPU) SetOverflow(on bool)   { c.setFlagV(on) }
func (c *CPU) SetBreak(on bool)      { c.setFlagB(on) }
func (c *CPU) SetDecimal(on bool)    { c.setFlagD(on) }
func (c *CPU) SetIrqDisable(on bool) { c.setFlagI(on) }
func (c *CPU) SetZero(on bool)       { c.setFlagZ(on) }
func (c *CPU) SetCarry(on bool)      { c.setFlagC(on) }

func (c *CPU) setFlagN(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I1, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I1, mask.I1)
	}
}

func (c *CPU) setFlagV(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I2, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I2, mask.I2)
	}
}

func (c *CPU) setFlagB(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I4, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I4, mask.I4)
	}
}

func (c *CPU) setFlagD(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I5, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I5, mask.I5)
	}
}

func (c *CPU) setFlagI(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I6, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I6, mask.I6)
	}
}

func (c *CPU) setFlagZ(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I7, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I7, mask.I7)
	}
}

func (c *CPU) setFlagC(on bool) {
	if on {
		c.P = mask.Set(c.P, mask.I8, 1)
	} else {
		c.P = mask.Unset(c.P, mask.I8, mask.I8)
	}
}

// setZN sets the Zero and Negative flags from the value just loaded,
// transferred, or computed -- the pattern nearly every instruction
// ends with.
func (c *CPU) setZN(v byte) {
	c.SetZero(v == 0)
	c.SetNegative(v&0x80 != 0)
}

// unusedAlwaysOne forces bit 5 (position I3, the historically unused
// flag) to 1, matching the physical chip's behavior whenever P is
// assembled from individual flags (PHP, reset).
func (c *CPU) unusedAlwaysOne() {
	c.P = mask.Set(c.P, mask.I3, 1)
}
