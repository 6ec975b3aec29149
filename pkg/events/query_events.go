package events

import (
	"time"

	"github.com/google/uuid"
)

// NewQueryCompleted records a session that terminated DONE with a grounded
// answer. chunkIDs lists every chunk cited in the final answer.
func NewQueryCompleted(sessionID uuid.UUID, correlationID, tenantID, userID string, chunkIDs []string, promptTokens, completionTokens int) Event {
	return BaseEvent{
		Type: "query.completed",
		Data: map[string]interface{}{
			"session_id":        sessionID.String(),
			"correlation_id":    correlationID,
			"tenant_id":         tenantID,
			"user_id":           userID,
			"chunk_ids_used":    chunkIDs,
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewQueryRefused records a policy refusal. degraded marks sessions whose
// guardrail verdict was a fail-open pass rather than a confirmed one.
func NewQueryRefused(sessionID uuid.UUID, correlationID, tenantID, userID, refusalReason string, degraded bool) Event {
	return BaseEvent{
		Type: "query.refused",
		Data: map[string]interface{}{
			"session_id":         sessionID.String(),
			"correlation_id":     correlationID,
			"tenant_id":          tenantID,
			"user_id":            userID,
			"refusal_reason":     refusalReason,
			"guardrail_degraded": degraded,
		},
		OccurredAt: time.Now().UTC(),
	}
}
