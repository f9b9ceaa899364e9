package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	out := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, out)
	require.Equal(t, uint32(0x01020304), engine.Uint32(out))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)

	out := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, out)
}

func TestEngine_RoundTripWidths(t *testing.T) {
	engine := GetLittleEndianEngine()

	b16 := engine.AppendUint16(nil, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), engine.Uint16(b16))

	b64 := engine.AppendUint64(nil, 0xDEADC0DEDEADC0DE)
	require.Equal(t, uint64(0xDEADC0DEDEADC0DE), engine.Uint64(b64))
}
