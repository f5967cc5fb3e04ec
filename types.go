package mqstub

import (
	"strconv"
)

// PacketType is the control packet kind carried in the high nibble of the first header byte.
type PacketType byte

func (t PacketType) String() string {
	switch t {
	case TypeConnect:
		return "CONNECT"
	case TypeConnAck:
		return "CONNACK"
	case TypePublish:
		return "PUBLISH"
	case TypePubAck:
		return "PUBACK"
	case TypePubRec:
		return "PUBREC"
	case TypePubRel:
		return "PUBREL"
	case TypePubComp:
		return "PUBCOMP"
	case TypeSubscribe:
		return "SUBSCRIBE"
	case TypeSubAck:
		return "SUBACK"
	case TypeUnsubscribe:
		return "UNSUBSCRIBE"
	case TypeUnsubAck:
		return "UNSUBACK"
	case TypePingReq:
		return "PINGREQ"
	case TypePingResp:
		return "PINGRESP"
	case TypeDisconnect:
		return "DISCONNECT"
	case TypeAuth:
		return "AUTH"
	default:
		return "RESERVED(" + strconv.Itoa(int(t)) + ")"
	}
}

// Supported reports whether packets of this type are interpreted.
// Every other type has its body skipped.
func (t PacketType) Supported() bool {
	return t == TypeConnect || t == TypePublish
}

// Packet is one decoded control packet. Body always holds exactly RemainingLength bytes.
type Packet struct {
	Type            PacketType
	Flags           byte // low nibble of the first header byte, never interpreted
	RemainingLength int
	Body            []byte
}

// ConnectFlags is the CONNECT flags byte.
type ConnectFlags byte

func (f ConnectFlags) CleanSession() bool { return f&0x02 != 0 }
func (f ConnectFlags) WillFlag() bool     { return f&0x04 != 0 }
func (f ConnectFlags) WillQoS() byte      { return byte(f>>3) & 0x03 }
func (f ConnectFlags) WillRetain() bool   { return f&0x20 != 0 }
func (f ConnectFlags) PasswordFlag() bool { return f&0x40 != 0 }
func (f ConnectFlags) UsernameFlag() bool { return f&0x80 != 0 }

// ConnectPacket holds the CONNECT fields that are decoded.
// Keep alive and the payload are left on the wire.
type ConnectPacket struct {
	ProtocolName  string
	ProtocolLevel byte
	Flags         ConnectFlags
	Unread        int // bytes after the flags byte
}

// PublishPacket holds a QoS 0 PUBLISH. Topic and Payload alias the packet body.
type PublishPacket struct {
	Topic   []byte
	Payload []byte
}

func (p *PublishPacket) TopicString() string {
	return string(p.Topic)
}

func (p *PublishPacket) PayloadString() string {
	return string(p.Payload)
}
