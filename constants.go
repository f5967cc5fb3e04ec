package mqstub

// Packet types.
const (
	TypeReserved PacketType = iota
	TypeConnect
	TypeConnAck
	TypePublish
	TypePubAck
	TypePubRec
	TypePubRel
	TypePubComp
	TypeSubscribe
	TypeSubAck
	TypeUnsubscribe
	TypeUnsubAck
	TypePingReq
	TypePingResp
	TypeDisconnect
	TypeAuth
)

// Remaining lengths according to the MQTT spec.
const (
	ConnackRemLen = 2 // 2 is constant remaining len as per [3.2.1]
)

// Fixed header layout.
const (
	fixedHeaderLen = 2 // packet type byte + first remaining length byte
	lenPrefixLen   = 2 // big endian uint16 in front of protocol name and topic
)

// Defaults.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 1883
)
