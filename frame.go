package mqstub

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/oimyounis/mqstub/bytes"
)

// readFixedHeader blocks until the packet type byte and the first remaining length byte arrive.
func readFixedHeader(r *bufio.Reader) (packetType PacketType, flags, first byte, err error) {
	fixedHeader := make([]byte, fixedHeaderLen)

	n, err := io.ReadFull(r, fixedHeader)
	if err != nil {
		if n == 0 {
			if errors.Is(err, io.EOF) {
				return 0, 0, 0, ErrStreamClosed
			}
			// nothing of the next packet arrived, so this is the connection failing
			return 0, 0, 0, fmt.Errorf("reading fixed header: %w", err)
		}
		return 0, 0, 0, truncated("fixed header", err)
	}

	packetType, flags = parseFixedHeaderFirstByte(fixedHeader[0])
	return packetType, flags, fixedHeader[1], nil
}

// decodeVariableLength finishes decoding the remaining length started by first.
// used counts every length byte, first included.
func decodeVariableLength(r *bufio.Reader, first byte, maxSize int) (remLen, used int, err error) {
	remLen, used, err = bytes.DecodeFrom(r, first)
	if err != nil {
		if errors.Is(err, bytes.ErrMalformedLength) {
			return 0, used, malformedLength("rem len parsing", err)
		}
		return 0, used, truncated("rem len parsing", err)
	}

	if maxSize > 0 && remLen > maxSize {
		return 0, used, malformedLength("rem len exceeds max packet size", nil)
	}

	return remLen, used, nil
}

// bodyChunkSize bounds how far the body buffer grows ahead of the bytes received.
const bodyChunkSize = 64 * 1024

// readBody blocks until exactly remLen bytes are read. The buffer grows as the body
// arrives, so an announced length costs nothing until the peer actually sends it.
func readBody(r *bufio.Reader, remLen int) ([]byte, error) {
	body := make([]byte, 0, min(remLen, bodyChunkSize))
	for len(body) < remLen {
		start := len(body)
		n := min(remLen-start, bodyChunkSize)
		body = slices.Grow(body, n)[:start+n]
		if _, err := io.ReadFull(r, body[start:]); err != nil {
			return nil, truncated("reading body", err)
		}
	}
	return body, nil
}

// skipBody discards remLen bytes without buffering them.
func skipBody(r *bufio.Reader, remLen int) error {
	if remLen == 0 {
		return nil
	}

	n, err := r.Discard(remLen)
	if err != nil {
		if n < remLen && errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return truncated("skipping body", err)
	}
	return nil
}
