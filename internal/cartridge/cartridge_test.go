package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildINES(prgBanks, chrBanks uint8, flags6, flags7 uint8, prgFill, chrFill uint8) []byte {
	header := make([]byte, 16)
	copy(header, "NES\x1A")
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = flags6
	header[7] = flags7

	prg := make([]byte, int(prgBanks)*16384)
	for i := range prg {
		prg[i] = prgFill
	}
	chr := make([]byte, int(chrBanks)*8192)
	for i := range chr {
		chr[i] = chrFill
	}

	rom := append(header, prg...)
	rom = append(rom, chr...)
	return rom
}

func TestLoadFromReaderRejectsBadMagic(t *testing.T) {
	bad := []byte("ROM\x1A0000000000000")
	_, err := LoadFromReader(bytes.NewReader(bad))
	assert.Error(t, err)
}

func TestLoadFromReaderRejectsZeroPRG(t *testing.T) {
	rom := buildINES(0, 1, 0, 0, 0, 0)
	_, err := LoadFromReader(bytes.NewReader(rom))
	assert.Error(t, err)
}

func TestLoadFromReaderSetsMirroringFromFlags6(t *testing.T) {
	horizontal := buildINES(1, 1, 0x00, 0, 0xAA, 0)
	cart, err := LoadFromReader(bytes.NewReader(horizontal))
	require.NoError(t, err)
	assert.Equal(t, MirrorHorizontal, cart.GetMirrorMode())

	vertical := buildINES(1, 1, 0x01, 0, 0xAA, 0)
	cart, err = LoadFromReader(bytes.NewReader(vertical))
	require.NoError(t, err)
	assert.Equal(t, MirrorVertical, cart.GetMirrorMode())

	fourScreen := buildINES(1, 1, 0x08, 0, 0xAA, 0)
	cart, err = LoadFromReader(bytes.NewReader(fourScreen))
	require.NoError(t, err)
	assert.Equal(t, MirrorFourScreen, cart.GetMirrorMode())
}

func TestLoadFromReaderSkipsTrainer(t *testing.T) {
	header := make([]byte, 16)
	copy(header, "NES\x1A")
	header[4] = 1
	header[5] = 0
	header[6] = 0x04 // trainer present

	trainer := make([]byte, 512)
	prg := make([]byte, 16384)
	prg[0] = 0x42

	rom := append(header, trainer...)
	rom = append(rom, prg...)

	cart, err := LoadFromReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), cart.ReadPRG(0x8000))
}

func TestLoadFromReaderZeroCHRSizeAllocatesCHRRAM(t *testing.T) {
	rom := buildINES(1, 0, 0, 0, 0xAA, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.True(t, cart.hasCHRRAM)
	cart.WriteCHR(0x10, 0x55)
	assert.Equal(t, uint8(0x55), cart.ReadCHR(0x10))
}

func TestMapper000Mirrors16KBPRGAcross32KBWindow(t *testing.T) {
	rom := buildINES(1, 1, 0, 0, 0x77, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	require.NoError(t, err)
	assert.Equal(t, cart.ReadPRG(0x8000), cart.ReadPRG(0xC000))
}

func TestMapper000PRGRAMReadWrite(t *testing.T) {
	rom := buildINES(1, 1, 0, 0, 0, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	require.NoError(t, err)
	cart.WritePRG(0x6123, 0x99)
	assert.Equal(t, uint8(0x99), cart.ReadPRG(0x6123))
}

func TestMockCartridgePRGAndCHRRoundTrip(t *testing.T) {
	cart := NewMockCartridge()
	data := make([]uint8, 0x8000)
	data[0] = 0xEA
	cart.LoadPRG(data)
	assert.Equal(t, uint8(0xEA), cart.ReadPRG(0x8000))

	cart.WriteCHR(0x100, 0x11)
	assert.Equal(t, uint8(0x11), cart.ReadCHR(0x100))
}
