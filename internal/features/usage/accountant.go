package usage

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UsageAccountant struct {
	usageRepository *UsageRepository
	logger          *slog.Logger
}

// Record appends one usage entry. Accounting is a side effect of an
// already-answered request: every failure is logged and swallowed, and
// a lost entry is an accepted failure mode. Nothing here may surface
// an error into the caller's response path.
func (s *UsageAccountant) Record(
	userID uuid.UUID,
	keyHash string,
	endpoint string,
	requestMeta RequestMetadata,
	responseMeta ResponseMetadata,
	cost int,
	latencyMs *int,
	statusCode int,
) {
	entry := &UsageEntry{
		ID:           uuid.New(),
		UserID:       userID,
		KeyHash:      keyHash,
		Endpoint:     endpoint,
		RequestMeta:  datatypes.NewJSONType(requestMeta),
		ResponseMeta: datatypes.NewJSONType(responseMeta),
		Cost:         cost,
		LatencyMs:    latencyMs,
		StatusCode:   statusCode,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.usageRepository.Create(entry); err != nil {
		s.logger.Error("failed to record usage entry",
			slog.String("userId", userID.String()),
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
	}
}
