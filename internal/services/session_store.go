package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dotlabs/dot-ranker/internal/models"
)

// SessionStoreService keeps each session's last analysis so /export returns
// the result that session produced, not whichever request finished last.
// Entries expire after the configured TTL.
type SessionStoreService interface {
	SaveLastAnalysis(ctx context.Context, sessionID string, analysis *models.SessionAnalysis) error
	LastAnalysis(ctx context.Context, sessionID string) (*models.SessionAnalysis, error)
}

type sessionStoreService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStoreService(client *redis.Client, ttl time.Duration) SessionStoreService {
	return &sessionStoreService{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID + ":last_analysis"
}

// SaveLastAnalysis implements SessionStoreService.
func (s *sessionStoreService) SaveLastAnalysis(ctx context.Context, sessionID string, analysis *models.SessionAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save analysis for session %s: %w", sessionID, err)
	}
	return nil
}

// LastAnalysis implements SessionStoreService. Returns ErrNoAnalysis when
// the session has no stored (or an expired) analysis.
func (s *sessionStoreService) LastAnalysis(ctx context.Context, sessionID string) (*models.SessionAnalysis, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis for session %s: %w", sessionID, err)
	}

	var analysis models.SessionAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &analysis, nil
}
