package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Urethramancer/rm16/isa"
	"github.com/Urethramancer/rm16/vm"
)

func encodeAt(t *testing.T, c *vm.CPU, addr uint32, ins isa.Instruction) uint32 {
	t.Helper()
	words, err := isa.Encode(ins)
	if err != nil {
		t.Fatalf("encode %+v: %v", ins, err)
	}
	c.LoadImage(addr, words)
	return addr + uint32(len(words))
}

func TestMovAndAddComputeFlags(t *testing.T) {
	c := vm.New()
	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 0xFFFF})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.ADD, Mode: isa.ModeImm, RA: isa.RegA, Imm: 1})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	assert.NoError(t, c.Run(nil))
	assert.Equal(t, uint16(0), c.Reg[isa.RegA])
	assert.True(t, c.Reg[isa.RegF]&isa.FlagC != 0, "carry out of 0xFFFF+1 should set C")
	assert.True(t, c.Reg[isa.RegF]&isa.FlagZ != 0, "wrapped result is zero")
}

func TestRomWriteIsRejectedNotTrapped(t *testing.T) {
	c := vm.New()
	var warned string
	c.SetWarn(func(msg string) { warned = msg })

	c.WriteWord(0x10, 0xBEEF)

	assert.Equal(t, uint16(0), c.Mem[0x10], "ROM write must be ignored")
	assert.NotEmpty(t, warned, "a ROM write should be warned about")
}

func TestRamWriteAboveBoundarySucceeds(t *testing.T) {
	c := vm.New()
	c.WriteWord(isa.RAMStart, 0x1234)
	assert.Equal(t, uint16(0x1234), c.Mem[isa.RAMStart])
}

func TestStackPushPopRoundTrip(t *testing.T) {
	c := vm.New()
	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 0xABCD})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.PUSH, Mode: isa.ModeReg, RA: isa.RegA})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.POP, Mode: isa.ModeReg, RA: isa.RegB})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	startSP := c.Reg[isa.RegSP]
	assert.NoError(t, c.Run(nil))
	assert.Equal(t, uint16(0xABCD), c.Reg[isa.RegB])
	assert.Equal(t, startSP, c.Reg[isa.RegSP], "push+pop must leave SP unchanged")
}

func TestConditionalJumpTakenOnZero(t *testing.T) {
	c := vm.New()
	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 1})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.DEC, Mode: isa.ModeReg, RA: isa.RegA})
	jzAt := addr
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.JZ, Mode: isa.ModeMemDirect, Imm: 0})
	skippedAt := addr
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegB, Imm: 0xDEAD})
	target := addr
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	// patch the JZ's target now that addresses are known
	words, _ := isa.Encode(isa.Instruction{Op: isa.JZ, Mode: isa.ModeMemDirect, Imm: uint16(target)})
	c.LoadImage(jzAt, words)
	_ = skippedAt

	assert.NoError(t, c.Run(nil))
	assert.Equal(t, uint16(0), c.Reg[isa.RegB], "the skipped MOV must not have executed")
}

func TestInterruptPushesPCThenFAndIretReverses(t *testing.T) {
	c := vm.New()
	// vector for handler 0 lives at mem[0xFFFF - 0]
	handlerAddr := uint32(0x8100)
	c.WriteWord(isa.VectorBase, uint16(handlerAddr))
	c.Reg[isa.RegF] |= isa.FlagI // unmask interrupts

	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.INT, Mode: isa.ModeImm, Imm: 0})
	afterInt := addr
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})
	encodeAt(t, c, handlerAddr, isa.Instruction{Op: isa.IRET, Mode: isa.ModeNull})

	startSP := c.Reg[isa.RegSP]
	_, err := c.Step() // INT
	assert.NoError(t, err)
	assert.Equal(t, uint16(handlerAddr), c.Reg[isa.RegPC])
	assert.Equal(t, startSP-2, c.Reg[isa.RegSP])

	_, err = c.Step() // IRET
	assert.NoError(t, err)
	assert.Equal(t, uint16(afterInt), c.Reg[isa.RegPC], "IRET must return past the INT instruction")
	assert.Equal(t, startSP, c.Reg[isa.RegSP])
}

func TestMaskedInterruptIsInert(t *testing.T) {
	c := vm.New()
	handlerAddr := uint32(0x8100)
	c.WriteWord(isa.VectorBase, uint16(handlerAddr))
	// FlagI is clear on a freshly-reset CPU: INT must be a no-op.

	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.INT, Mode: isa.ModeImm, Imm: 0})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	startSP := c.Reg[isa.RegSP]
	startF := c.Reg[isa.RegF]
	_, err := c.Step() // INT, masked
	assert.NoError(t, err)
	assert.Equal(t, uint16(addr), c.Reg[isa.RegPC], "masked INT must fall through to the next instruction")
	assert.Equal(t, startSP, c.Reg[isa.RegSP], "masked INT must not push anything")
	assert.Equal(t, startF, c.Reg[isa.RegF], "masked INT must not touch flags")
}

func TestConsoleWriteGoesToPortZeroCallback(t *testing.T) {
	c := vm.New()
	var got uint16
	c.Console = func(v uint16) { got = v }

	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegB, Imm: 'H'})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.OUTB, Mode: isa.ModeImm, RB: isa.RegB, Imm: 0})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	assert.NoError(t, c.Run(nil))
	assert.Equal(t, uint16('H'), got)
}

func TestBankRoutingSelectsAuxiliaryMemory(t *testing.T) {
	c := vm.New()
	c.Mem[isa.BankWindowStart] = 0x1111 // what's visible with MB==0
	c.Bank[1][0] = 0x2222

	assert.Equal(t, uint16(0x1111), c.ReadWord(isa.BankWindowStart))

	c.Reg[isa.RegMB] = 1
	assert.Equal(t, uint16(0x2222), c.ReadWord(isa.BankWindowStart))

	c.WriteWord(isa.BankWindowStart, 0x3333)
	assert.Equal(t, uint16(0x3333), c.Bank[1][0])
	assert.Equal(t, uint16(0x1111), c.Mem[isa.BankWindowStart], "bank write must not touch main memory")
}

func TestBankSelectorWrapsModulo32(t *testing.T) {
	c := vm.New()
	c.Mem[isa.BankWindowStart] = 0x1111
	c.Bank[1][0] = 0x2222

	c.Reg[isa.RegMB] = 32 // 32 % 32 == 0: unbanked, must not panic or go out of range
	assert.Equal(t, uint16(0x1111), c.ReadWord(isa.BankWindowStart))

	c.Reg[isa.RegMB] = 33 // 33 % 32 == 1: same bank as MB==1
	assert.Equal(t, uint16(0x2222), c.ReadWord(isa.BankWindowStart))
}

func TestSubtractCarryIsNonBorrowConvention(t *testing.T) {
	c := vm.New()
	addr := uint32(0)
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 5})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.CMP, Mode: isa.ModeImm, RA: isa.RegA, Imm: 3})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	assert.NoError(t, c.Run(nil))
	assert.True(t, c.Reg[isa.RegF]&isa.FlagC != 0, "5 >= 3: no borrow, C must be set")

	c.Reset()
	addr = 0
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.MOV, Mode: isa.ModeImm, RA: isa.RegA, Imm: 3})
	addr = encodeAt(t, c, addr, isa.Instruction{Op: isa.CMP, Mode: isa.ModeImm, RA: isa.RegA, Imm: 5})
	encodeAt(t, c, addr, isa.Instruction{Op: isa.HALT, Mode: isa.ModeNull})

	assert.NoError(t, c.Run(nil))
	assert.True(t, c.Reg[isa.RegF]&isa.FlagC == 0, "3 < 5: borrow occurred, C must be clear")
}
