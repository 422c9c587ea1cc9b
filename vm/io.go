package vm

import "github.com/Urethramancer/rm16/isa"

// opINB reads a port into RA: register-held port number, or an immediate
// one (spec §4.6). Port 0 is the console; it has no meaningful read value.
func opINB(c *CPU, ins isa.Instruction) error {
	port := c.portNumber(ins, isa.ModeReg, ins.RB)
	c.Reg[ins.RA] = c.Ports[port]
	return nil
}

// opOUTB writes RB to a port: register-held port number in RA, or an
// immediate one. Port 0 delegates to the attached console callback instead
// of being stored (spec §5).
func opOUTB(c *CPU, ins isa.Instruction) error {
	port := c.portNumber(ins, isa.ModeReg, ins.RA)
	value := c.Reg[ins.RB]
	if port == 0 {
		if c.Console != nil {
			c.Console(value)
		}
		return nil
	}
	c.Ports[port] = value
	return nil
}

// portNumber resolves the port-select operand, which for INB sits in RB and
// for OUTB sits in RA — both masked to a byte since there are 256 ports.
func (c *CPU) portNumber(ins isa.Instruction, regMode isa.Mode, reg uint8) uint8 {
	if ins.Mode == regMode {
		return uint8(c.Reg[reg])
	}
	return uint8(ins.Imm)
}
