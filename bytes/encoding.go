package bytes

import (
	"errors"
	"io"
)

const (
	// MaxLengthBytes is the most bytes a Remaining Length field may occupy.
	MaxLengthBytes = 4
	// MaxRemainingLength is the largest value that fits in MaxLengthBytes.
	MaxRemainingLength = 268435455
)

var (
	ErrMalformedLength = errors.New("malformed remaining length")
	ErrLengthTooLarge  = errors.New("remaining length exceeds maximum")
)

// Encode takes an integer representing Remaining Length and encodes it according to the MQTT spec.
func Encode(x int) ([]byte, error) {
	if x < 0 || x > MaxRemainingLength {
		return nil, ErrLengthTooLarge
	}

	encoded := make([]byte, 0, MaxLengthBytes)
	for {
		enc := byte(x % 128)
		x = x / 128
		if x > 0 {
			enc = enc | 128
		}
		encoded = append(encoded, enc)
		if x == 0 {
			break
		}
	}
	return encoded, nil
}

// Decode takes an encoded Remaining Length slice of bytes and decodes it into an integer.
// Returns an additional error if the decoding fails.
func Decode(stream []byte) (int, error) {
	if len(stream) == 0 {
		return 0, ErrMalformedLength
	}

	i := 1
	value, _, err := DecodeFrom(byteReaderFunc(func() (byte, error) {
		if i >= len(stream) {
			return 0, io.ErrUnexpectedEOF
		}
		b := stream[i]
		i++
		return b, nil
	}), stream[0])
	return value, err
}

// DecodeFrom decodes a Remaining Length whose first byte has already been read,
// pulling continuation bytes from r one at a time. It returns the value and the
// total number of length bytes consumed, first byte included.
func DecodeFrom(r io.ByteReader, first byte) (value int, used int, err error) {
	mult := 1
	encodedByte := first
	used = 1

	for {
		value += int(encodedByte&127) * mult

		if encodedByte&128 == 0 {
			return value, used, nil
		}

		if used == MaxLengthBytes {
			return 0, used, ErrMalformedLength
		}

		mult *= 128
		encodedByte, err = r.ReadByte()
		if err != nil {
			return 0, used, err
		}
		used++
	}
}

type byteReaderFunc func() (byte, error)

func (f byteReaderFunc) ReadByte() (byte, error) {
	return f()
}
