package stream_snapshots

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/infra/snapshot"
)

// Frame сообщение WebSocket с полным состоянием коллекции
type Frame struct {
	Collection string      `json:"collection"`
	Items      interface{} `json:"items"`
	SentAt     time.Time   `json:"sentAt"`
}

func FromSnapshot(s snapshot.Snapshot) Frame {
	return Frame{
		Collection: s.Collection,
		Items:      s.Items,
		SentAt:     s.SentAt,
	}
}
