package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"sales_insights/internal/services"
)

const DatasetReplacedType = "dataset.replaced"

// DatasetReplacedMessage is published after every successful import.
type DatasetReplacedMessage struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	Source     string    `json:"source"`
	Records    int       `json:"records"`
	ReplacedAt time.Time `json:"replaced_at"`
}

func NewDatasetReplacedMessage(event services.ImportEvent) DatasetReplacedMessage {
	return DatasetReplacedMessage{
		Type:       DatasetReplacedType,
		Reference:  event.Reference,
		Source:     event.Source,
		Records:    event.Records,
		ReplacedAt: event.ReplacedAt,
	}
}

func (m DatasetReplacedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func decodeDatasetReplacedMessage(data []byte) (DatasetReplacedMessage, error) {
	var msg DatasetReplacedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return DatasetReplacedMessage{}, fmt.Errorf("unmarshal dataset replaced message: %w", err)
	}
	if msg.Type != DatasetReplacedType {
		return DatasetReplacedMessage{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	return msg, nil
}
