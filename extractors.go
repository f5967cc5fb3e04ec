package mqstub

import (
	"encoding/binary"
)

// parseFixedHeaderFirstByte splits the first header byte into packet type and flags bits.
func parseFixedHeaderFirstByte(b byte) (PacketType, byte) {
	return PacketType(b >> 4), b & 0x0F
}

// extractLengthPrefixed reads a 2 byte big endian length at offset and returns the
// bytes it announces plus the offset just past them.
func extractLengthPrefixed(body []byte, offset int, field string) ([]byte, int, error) {
	if len(body) < offset+lenPrefixLen {
		return nil, 0, malformedBody(field + " length prefix missing")
	}

	fieldLen := int(binary.BigEndian.Uint16(body[offset : offset+lenPrefixLen]))
	start := offset + lenPrefixLen
	end := start + fieldLen
	if len(body) < end {
		return nil, 0, malformedBody(field + " length is not valid")
	}

	return body[start:end], end, nil
}

func extractConnect(body []byte) (*ConnectPacket, error) {
	protocolName, head, err := extractLengthPrefixed(body, 0, "protocol name")
	if err != nil {
		return nil, err
	}

	if len(body) < head+2 {
		return nil, malformedBody("protocol level or connect flags missing")
	}

	return &ConnectPacket{
		ProtocolName:  string(protocolName),
		ProtocolLevel: body[head],
		Flags:         ConnectFlags(body[head+1]),
		Unread:        len(body) - head - 2,
	}, nil
}

func extractPublish(body []byte) (*PublishPacket, error) {
	topic, topicEnd, err := extractLengthPrefixed(body, 0, "topic")
	if err != nil {
		return nil, err
	}

	return &PublishPacket{
		Topic:   topic,
		Payload: body[topicEnd:],
	}, nil
}
