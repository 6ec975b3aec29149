package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/logger"
	"contract-qa-be/pkg/guardrail"

	gocache "github.com/patrickmn/go-cache"
)

type IGuardrailService interface {
	ValidateInput(ctx context.Context, req *dto.ValidateInputRequest) (*dto.ValidateInputResponse, error)
	ValidateOutput(ctx context.Context, req *dto.ValidateOutputRequest) (*dto.ValidateOutputResponse, error)
}

type guardrailService struct {
	injectionDetector *guardrail.InjectionDetector
	piiDetector       *guardrail.PIIDetector
	verdictCache      *gocache.Cache
	log               logger.ILogger
}

func NewGuardrailService(scoreThreshold float64, log logger.ILogger) IGuardrailService {
	return &guardrailService{
		injectionDetector: guardrail.NewInjectionDetector(scoreThreshold),
		piiDetector:       guardrail.NewPIIDetector(),
		verdictCache:      gocache.New(5*time.Minute, 10*time.Minute),
		log:               log,
	}
}

func (s *guardrailService) ValidateInput(ctx context.Context, req *dto.ValidateInputRequest) (*dto.ValidateInputResponse, error) {
	cacheKey := verdictKey(req.TenantId, req.Text)
	if cached, found := s.verdictCache.Get(cacheKey); found {
		return cached.(*dto.ValidateInputResponse), nil
	}

	resp := &dto.ValidateInputResponse{Passed: true}

	if len(req.Text) > guardrail.MaxQueryLength {
		resp.Passed = false
		resp.RefusalCode = guardrail.CodeQueryTooLong
		s.verdictCache.Set(cacheKey, resp, gocache.DefaultExpiration)
		return resp, nil
	}

	injected, score, matches := s.injectionDetector.IsInjection(req.Text)
	resp.InjectionScore = score
	resp.MatchedPatterns = matches
	if injected {
		resp.Passed = false
		resp.RefusalCode = guardrail.CodeInjectionDetected
		s.log.Warn("guardrail", "input rejected by injection screen", map[string]interface{}{
			"tenant_id":        req.TenantId,
			"score":            score,
			"patterns_matched": len(matches),
		})
	}

	if pii := s.piiDetector.Detect(req.Text); len(pii) > 0 {
		// PII in the query is logged, not refused; the evidence corpus is
		// tenant-private so the query never leaves the tenant boundary.
		s.log.Warn("guardrail", "pii shapes detected in query", map[string]interface{}{
			"tenant_id": req.TenantId,
			"patterns":  len(pii),
		})
	}

	s.verdictCache.Set(cacheKey, resp, gocache.DefaultExpiration)
	return resp, nil
}

func (s *guardrailService) ValidateOutput(ctx context.Context, req *dto.ValidateOutputRequest) (*dto.ValidateOutputResponse, error) {
	if req.Answer == "" {
		return &dto.ValidateOutputResponse{Passed: false, RefusalCode: guardrail.CodeEmptyAnswer}, nil
	}
	if req.CitationCount == 0 {
		return &dto.ValidateOutputResponse{Passed: false, RefusalCode: guardrail.CodeNoCitations}, nil
	}
	return &dto.ValidateOutputResponse{Passed: true}, nil
}

func verdictKey(tenantId, text string) string {
	sum := sha256.Sum256([]byte(tenantId + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
