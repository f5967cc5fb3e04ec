package mqstub

import (
	"github.com/oimyounis/mqstub/bytes"
)

// encodeFrame builds a complete packet: fixed header, remaining length, body.
func encodeFrame(packetType PacketType, flags byte, body []byte) ([]byte, error) {
	remLen, err := bytes.Encode(len(body))
	if err != nil {
		return nil, err
	}

	packet := make([]byte, 0, 1+len(remLen)+len(body))
	packet = append(packet, byte(packetType)<<4|flags&0x0F)
	packet = append(packet, remLen...)
	return append(packet, body...), nil
}

func makeConnAckPacket(sessionPresent, returnCode byte) ([]byte, error) {
	return encodeFrame(TypeConnAck, 0, []byte{sessionPresent, returnCode})
}
