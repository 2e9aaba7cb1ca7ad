package mqtt

import "log"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue is a bounded FIFO holding messages while the broker is
// unreachable. When full, the oldest message is dropped so the most
// recent snapshots survive an outage. Not safe for concurrent use;
// caller must synchronize.
type replayQueue struct {
	msgs    []bufferedMsg
	max     int
	dropped bool // a drop happened since the last drain
}

func newReplayQueue(max int) *replayQueue {
	return &replayQueue{max: max}
}

func (q *replayQueue) push(msg bufferedMsg) {
	if len(q.msgs) >= q.max {
		if !q.dropped {
			log.Printf("mqtt: offline buffer full (%d messages), dropping oldest", q.max)
			q.dropped = true
		}
		q.msgs = q.msgs[1:]
	}
	q.msgs = append(q.msgs, msg)
}

// drain returns the queued messages oldest-first and empties the queue.
func (q *replayQueue) drain() []bufferedMsg {
	if len(q.msgs) == 0 {
		return nil
	}
	out := q.msgs
	q.msgs = nil
	q.dropped = false
	return out
}

func (q *replayQueue) len() int {
	return len(q.msgs)
}
