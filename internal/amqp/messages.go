package amqp

import (
	"encoding/json"
	"time"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

// SummaryMessage carries one computed summary report.
type SummaryMessage struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Period      string       `json:"period,omitempty"`
	Summary     core.Summary `json:"summary"`
}

func NewSummaryMessage(summary core.Summary) *SummaryMessage {
	return &SummaryMessage{
		GeneratedAt: time.Now().UTC(),
		Period:      summary.Period,
		Summary:     summary,
	}
}

// ToJSON converts the message to JSON bytes
func (m *SummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummaryMessageFromJSON decodes a message published by PublishSummary.
func SummaryMessageFromJSON(data []byte) (*SummaryMessage, error) {
	var msg SummaryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
