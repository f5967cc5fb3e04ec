package mqstub

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"runtime"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func newReader(b []byte) *bufio.Reader {
	return bufio.NewReader(bytes.NewReader(b))
}

func TestReadFixedHeader(t *testing.T) {
	packetType, flags, first, err := readFixedHeader(newReader([]byte{0x3B, 0x0C}))
	require.NoError(t, err)
	require.Equal(t, TypePublish, packetType)
	require.Equal(t, byte(0x0B), flags)
	require.Equal(t, byte(0x0C), first)
}

func TestReadFixedHeaderStreamClosed(t *testing.T) {
	_, _, _, err := readFixedHeader(newReader(nil))
	require.ErrorIs(t, err, ErrStreamClosed)

	var decodeErr *DecodeError
	require.False(t, errors.As(err, &decodeErr))
}

func TestReadFixedHeaderTruncated(t *testing.T) {
	_, _, _, err := readFixedHeader(newReader([]byte{0x10}))
	require.ErrorIs(t, err, ErrTruncatedRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadFixedHeaderConnectionReset(t *testing.T) {
	_, _, _, err := readFixedHeader(bufio.NewReader(iotest.ErrReader(syscall.ECONNRESET)))
	require.ErrorIs(t, err, syscall.ECONNRESET)
	require.NotErrorIs(t, err, ErrStreamClosed)

	var decodeErr *DecodeError
	require.False(t, errors.As(err, &decodeErr))
}

func TestReadFixedHeaderResetMidHeader(t *testing.T) {
	r := io.MultiReader(bytes.NewReader([]byte{0x30}), iotest.ErrReader(syscall.ECONNRESET))
	_, _, _, err := readFixedHeader(bufio.NewReader(r))
	require.ErrorIs(t, err, ErrTruncatedRead)
	require.ErrorIs(t, err, syscall.ECONNRESET)
}

func TestDecodeVariableLength(t *testing.T) {
	expect := []struct {
		name    string
		first   byte
		rest    []byte
		remLen  int
		used    int
		wantErr error
	}{
		{name: "zero", first: 0x00, remLen: 0, used: 1},
		{name: "single byte max", first: 0x7F, remLen: 127, used: 1},
		{name: "two bytes min", first: 0x80, rest: []byte{0x01}, remLen: 128, used: 2},
		{name: "four bytes max", first: 0xFF, rest: []byte{0xFF, 0xFF, 0x7F}, remLen: 268435455, used: 4},
		{name: "fifth byte", first: 0xFF, rest: []byte{0xFF, 0xFF, 0xFF, 0x7F}, used: 4, wantErr: ErrMalformedLength},
		{name: "endless continuation", first: 0x80, rest: bytes.Repeat([]byte{0x80}, 64), used: 4, wantErr: ErrMalformedLength},
		{name: "stream ends", first: 0x80, rest: []byte{0x80}, used: 2, wantErr: ErrTruncatedRead},
	}

	for _, wanted := range expect {
		t.Run(wanted.name, func(t *testing.T) {
			remLen, used, err := decodeVariableLength(newReader(wanted.rest), wanted.first, 0)
			require.Equal(t, wanted.used, used)
			if wanted.wantErr != nil {
				require.ErrorIs(t, err, wanted.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, wanted.remLen, remLen)
		})
	}
}

func TestDecodeVariableLengthMaxSize(t *testing.T) {
	_, _, err := decodeVariableLength(newReader([]byte{0x01}), 0x80, 100)
	require.ErrorIs(t, err, ErrMalformedLength)

	remLen, _, err := decodeVariableLength(newReader(nil), 100, 100)
	require.NoError(t, err)
	require.Equal(t, 100, remLen)
}

func TestReadBody(t *testing.T) {
	r := newReader([]byte{1, 2, 3, 4, 5})
	body, err := readBody(r, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, body)

	body, err = readBody(r, 0)
	require.NoError(t, err)
	require.Len(t, body, 0)
}

func TestReadBodyTruncated(t *testing.T) {
	_, err := readBody(newReader(make([]byte, 10)), 20)
	require.ErrorIs(t, err, ErrTruncatedRead)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	require.Equal(t, "reading body", decodeErr.Reason)
}

func TestReadBodyLargerThanChunk(t *testing.T) {
	want := bytes.Repeat([]byte{0x5A}, 3*bodyChunkSize+17)
	body, err := readBody(newReader(want), len(want))
	require.NoError(t, err)
	require.Equal(t, want, body)
}

func TestReadBodyAnnouncedLengthNotAllocated(t *testing.T) {
	r := newReader(make([]byte, 10))

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := readBody(r, 268435455)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, ErrTruncatedRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(8<<20))
}

func TestSkipBody(t *testing.T) {
	r := newReader([]byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, skipBody(r, 5))
	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(6), b)

	require.NoError(t, skipBody(r, 0))
}

func TestSkipBodyLargerThanBuffer(t *testing.T) {
	r := newReader(make([]byte, 10000))
	require.NoError(t, skipBody(r, 9999))
	_, err := r.ReadByte()
	require.NoError(t, err)
}

func TestSkipBodyTruncated(t *testing.T) {
	err := skipBody(newReader([]byte{1, 2}), 5)
	require.ErrorIs(t, err, ErrTruncatedRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeError(t *testing.T) {
	err := error(truncated("reading body", io.ErrUnexpectedEOF))
	require.Equal(t, "truncated read: reading body: unexpected EOF", err.Error())
	require.ErrorIs(t, err, ErrTruncatedRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.NotErrorIs(t, err, ErrMalformedBody)

	err = malformedBody("topic length is not valid")
	require.Equal(t, "malformed body: topic length is not valid", err.Error())
	require.ErrorIs(t, err, ErrMalformedBody)
}
