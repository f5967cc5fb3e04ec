package mqstub

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oimyounis/mqstub/utils"
)

type brokerStats struct {
	connectionsCount, connectedClientsCount                int64
	packetsCount, connectsCount, publishesCount, skipCount int64
	malformedCount, bytesInCount, bytesOutCount            int64
	started                                                time.Time
}

func newBrokerStats() *brokerStats {
	return &brokerStats{started: time.Now()}
}

func (s *brokerStats) connection() {
	atomic.AddInt64(&s.connectionsCount, 1)
	atomic.AddInt64(&s.connectedClientsCount, 1)
}

func (s *brokerStats) disconnection() {
	atomic.AddInt64(&s.connectedClientsCount, -1)
}

// packet counts a packet that was read and interpreted.
func (s *brokerStats) packet(packetType PacketType) {
	atomic.AddInt64(&s.packetsCount, 1)
	switch packetType {
	case TypeConnect:
		atomic.AddInt64(&s.connectsCount, 1)
	case TypePublish:
		atomic.AddInt64(&s.publishesCount, 1)
	default:
		atomic.AddInt64(&s.skipCount, 1)
	}
}

func (s *brokerStats) malformed() {
	atomic.AddInt64(&s.malformedCount, 1)
}

func (s *brokerStats) bytesIn(delta int64) {
	atomic.AddInt64(&s.bytesInCount, delta)
}

func (s *brokerStats) bytesOut(delta int64) {
	atomic.AddInt64(&s.bytesOutCount, delta)
}

func (s *brokerStats) uptime() time.Duration {
	return time.Since(s.started).Round(time.Second)
}

// Reset zeroes the traffic counters. Connected clients and uptime are kept.
func (s *brokerStats) Reset() {
	atomic.StoreInt64(&s.connectionsCount, 0)
	atomic.StoreInt64(&s.packetsCount, 0)
	atomic.StoreInt64(&s.connectsCount, 0)
	atomic.StoreInt64(&s.publishesCount, 0)
	atomic.StoreInt64(&s.skipCount, 0)
	atomic.StoreInt64(&s.malformedCount, 0)
	atomic.StoreInt64(&s.bytesInCount, 0)
	atomic.StoreInt64(&s.bytesOutCount, 0)
}

func (s *brokerStats) snapshot() map[string]int64 {
	return map[string]int64{
		"connections": atomic.LoadInt64(&s.connectionsCount),
		"clients":     atomic.LoadInt64(&s.connectedClientsCount),
		"packets":     atomic.LoadInt64(&s.packetsCount),
		"connects":    atomic.LoadInt64(&s.connectsCount),
		"publishes":   atomic.LoadInt64(&s.publishesCount),
		"skipped":     atomic.LoadInt64(&s.skipCount),
		"malformed":   atomic.LoadInt64(&s.malformedCount),
		"bytesIn":     atomic.LoadInt64(&s.bytesInCount),
		"bytesOut":    atomic.LoadInt64(&s.bytesOutCount),
		"uptime":      int64(s.uptime().Seconds()),
	}
}

func (s *brokerStats) String() string {
	snap := s.snapshot()
	return fmt.Sprintf(`Broker Stats:
  Connections: %v
  Connected Clients: %v
  Packets: %v
  Connects: %v
  Publishes: %v
  Skipped: %v
  Malformed: %v
  Bytes In: %v
  Bytes Out: %v
  Uptime: %v`, snap["connections"], snap["clients"], snap["packets"], snap["connects"], snap["publishes"],
		snap["skipped"], snap["malformed"], snap["bytesIn"], snap["bytesOut"], s.uptime())
}

func (s *brokerStats) JSON() []byte {
	return utils.ToJSONBytes(s.snapshot(), "{}")
}
