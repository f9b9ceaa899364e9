package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lanefield/bondwire/errs"
	"github.com/lanefield/bondwire/format"
)

func TestParse_SingleStringField(t *testing.T) {
	// One string field "name" with id 5.
	data := []byte{
		0x01, 0x00,
		0x04, 'n', 'a', 'm', 'e',
		0x09,
		0x05, 0x00,
	}

	fields, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "name", fields[0].Name)
	require.Equal(t, format.TypeString, fields[0].Type)
	require.Equal(t, uint16(5), fields[0].ID)
}

func TestParse_MultipleFields(t *testing.T) {
	data := []byte{
		0x03, 0x00,
		0x02, 't', 's', byte(format.TypeDouble), 0x01, 0x00,
		0x03, 's', 'e', 'v', byte(format.TypeInt32), 0x02, 0x00,
		0x03, 'm', 's', 'g', byte(format.TypeWString), 0xFF, 0x7F,
	}

	fields, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	require.Equal(t, "ts", fields[0].Name)
	require.Equal(t, format.TypeDouble, fields[0].Type)
	require.Equal(t, uint16(1), fields[0].ID)

	require.Equal(t, "sev", fields[1].Name)
	require.Equal(t, format.TypeInt32, fields[1].Type)
	require.Equal(t, uint16(2), fields[1].ID)

	require.Equal(t, "msg", fields[2].Name)
	require.Equal(t, format.TypeWString, fields[2].Type)
	require.Equal(t, uint16(0x7FFF), fields[2].ID)
}

func TestParse_EmptySchema(t *testing.T) {
	fields, err := Parse([]byte{0x00, 0x00})
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParse_TooShortForCount(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {0x01}} {
		_, err := Parse(data)
		require.ErrorIs(t, err, errs.ErrSchemaTooShort)
	}
}

func TestParse_TruncatedAfterFirstField(t *testing.T) {
	// Declares two fields but only carries the first one's data.
	data := []byte{
		0x02, 0x00,
		0x01, 'a', byte(format.TypeInt32), 0x01, 0x00,
	}

	_, err := Parse(data)
	require.ErrorIs(t, err, errs.ErrFieldTruncated)
}

func TestParse_TruncatedInsideField(t *testing.T) {
	full := []byte{
		0x01, 0x00,
		0x04, 'n', 'a', 'm', 'e',
		0x09,
		0x05, 0x00,
	}

	// Any prefix shorter than the full encoding must fail.
	for cut := 2; cut < len(full); cut++ {
		_, err := Parse(full[:cut])
		require.Errorf(t, err, "prefix of %d bytes should fail", cut)
		require.ErrorIs(t, err, errs.ErrFieldTruncated)
	}
}

func TestParse_IgnoresTrailingBytes(t *testing.T) {
	data := []byte{
		0x01, 0x00,
		0x01, 'x', byte(format.TypeBool), 0x07, 0x00,
		0xDE, 0xAD, // trailing garbage after the declared field
	}

	fields, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "x", fields[0].Name)
}

func TestAppendCompact_RoundTrip(t *testing.T) {
	fields := []FieldDef{
		{Name: "timestamp", Type: format.TypeString, ID: 1},
		{Name: "severity", Type: format.TypeInt32, ID: 2},
		{Name: "value", Type: format.TypeDouble, ID: 300},
	}

	data, err := AppendCompact(nil, fields)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, fields, parsed)
}

func TestAppendCompact_NameTooLong(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	_, err := AppendCompact(nil, []FieldDef{{Name: string(long), Type: format.TypeString, ID: 1}})
	require.ErrorIs(t, err, errs.ErrNameTooLong)
}
