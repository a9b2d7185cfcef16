package usage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RequestMetadata is written by the gateway at accounting time with a
// fixed shape, so analytics never has to guess field names at read time.
type RequestMetadata struct {
	Library string `json:"library,omitempty"`
	Query   string `json:"query,omitempty"`
	Topic   string `json:"topic,omitempty"`
}

type ResponseMetadata struct {
	ResultCount int `json:"resultCount,omitempty"`
}

// UsageEntry is one immutable accounting record. Rows reference the
// credential digest instead of the credential id so accounting survives
// key deletion. CreatedAt is the sole field used for windowing.
type UsageEntry struct {
	ID      uuid.UUID `json:"id"      gorm:"column:id;primaryKey"`
	UserID  uuid.UUID `json:"userId"  gorm:"column:user_id;index"`
	KeyHash string    `json:"-"       gorm:"column:key_hash;index"`

	Endpoint     string                               `json:"endpoint"     gorm:"column:endpoint"`
	RequestMeta  datatypes.JSONType[RequestMetadata]  `json:"requestMeta"  gorm:"column:request_meta"`
	ResponseMeta datatypes.JSONType[ResponseMetadata] `json:"responseMeta" gorm:"column:response_meta"`

	Cost       int       `json:"cost"       gorm:"column:cost"`
	LatencyMs  *int      `json:"latencyMs"  gorm:"column:latency_ms"`
	StatusCode int       `json:"statusCode" gorm:"column:status_code"`
	CreatedAt  time.Time `json:"createdAt"  gorm:"column:created_at;index"`
}

func (UsageEntry) TableName() string {
	return "usage_entries"
}
