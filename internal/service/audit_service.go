package service

import (
	"context"

	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/pkg/events"
	pktNats "contract-qa-be/pkg/nats"
)

type IAuditService interface {
	Start() error
}

// auditService drains the NATS event stream into the append-only audit log.
// Every session outcome and indexing transition ends up in one greppable
// file regardless of which instance produced it.
type auditService struct {
	subscriber *pktNats.Subscriber
	auditLog   logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, auditLog logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		auditLog:   auditLog,
	}
}

func (s *auditService) Start() error {
	return s.subscriber.Subscribe("events.>", "agent-audit", s.record)
}

func (s *auditService) record(ctx context.Context, event events.Event) error {
	s.auditLog.Info("audit", event.EventType(), event.Payload())
	return nil
}
