package bytes

import (
	gob "bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	expect := []struct {
		value   int
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{321, []byte{0xC1, 0x02}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2097152, []byte{0x80, 0x80, 0x80, 0x01}},
		{MaxRemainingLength, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, wanted := range expect {
		t.Run(fmt.Sprint(wanted.value), func(t *testing.T) {
			encoded, err := Encode(wanted.value)
			require.NoError(t, err)
			require.Equal(t, wanted.encoded, encoded)

			value, err := Decode(wanted.encoded)
			require.NoError(t, err)
			require.Equal(t, wanted.value, value)
		})
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	_, err := Encode(MaxRemainingLength + 1)
	require.ErrorIs(t, err, ErrLengthTooLarge)

	_, err = Encode(-1)
	require.ErrorIs(t, err, ErrLengthTooLarge)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	boundaries := []int{0, 127, 128, 16383, 16384, 2097151, 2097152, MaxRemainingLength}
	for _, b := range boundaries {
		for delta := -3; delta <= 3; delta++ {
			n := b + delta
			if n < 0 || n > MaxRemainingLength {
				continue
			}

			encoded, err := Encode(n)
			require.NoError(t, err)
			require.LessOrEqual(t, len(encoded), MaxLengthBytes)

			value, used, err := DecodeFrom(gob.NewReader(encoded[1:]), encoded[0])
			require.NoError(t, err)
			require.Equal(t, n, value)
			require.Equal(t, len(encoded), used)
		}
	}

	for n := 0; n <= MaxRemainingLength; n += 9973 {
		encoded, err := Encode(n)
		require.NoError(t, err)
		value, err := Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, n, value)
	}
}

func TestDecodeFromStopsAtTerminator(t *testing.T) {
	r := gob.NewReader([]byte{0x01, 0xAA, 0xBB})
	value, used, err := DecodeFrom(r, 0x80)
	require.NoError(t, err)
	require.Equal(t, 128, value)
	require.Equal(t, 2, used)
	require.Equal(t, 2, r.Len())
}

func TestDecodeFromMalformed(t *testing.T) {
	r := gob.NewReader([]byte{0xFF, 0xFF, 0xFF, 0x01})
	_, used, err := DecodeFrom(r, 0xFF)
	require.ErrorIs(t, err, ErrMalformedLength)
	require.Equal(t, MaxLengthBytes, used)
	require.Equal(t, 1, r.Len())
}

func TestDecodeFromTruncated(t *testing.T) {
	_, _, err := DecodeFrom(gob.NewReader([]byte{0x80}), 0x80)
	require.True(t, errors.Is(err, io.EOF))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrMalformedLength)

	_, err = Decode([]byte{0x80, 0x80})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Decode([]byte{0x80, 0x80, 0x80, 0x80, 0x01})
	require.ErrorIs(t, err, ErrMalformedLength)
}

func TestByteToBinaryString(t *testing.T) {
	require.Equal(t, "00000010", ByteToBinaryString(0x02))
	require.Equal(t, "11000010", ByteToBinaryString(0xC2))
}
