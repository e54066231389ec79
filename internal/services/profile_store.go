package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"dotlabs/dot-ranker/internal/models"
)

// ProfileStoreService supplies the candidate profile collection. The ranking
// core only consumes the returned slice; where the profiles come from is
// this service's concern.
type ProfileStoreService interface {
	Profiles() ([]models.Profile, error)
	Reload() ([]models.Profile, error)
	StartRefresher(interval time.Duration)
	StopRefresher()
}

type profileFile struct {
	DotProfiles []models.Profile `json:"dot_profiles"`
}

type profileStoreService struct {
	path string

	mu     sync.RWMutex
	cache  []models.Profile
	loaded bool

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewProfileStoreService(path string) ProfileStoreService {
	return &profileStoreService{
		path:     path,
		stopChan: make(chan struct{}),
	}
}

// Profiles returns the cached collection, loading the file on first use.
func (s *profileStoreService) Profiles() ([]models.Profile, error) {
	s.mu.RLock()
	if s.loaded {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.Reload()
}

// Reload re-reads the profile file. Both accepted shapes are supported: a
// bare JSON array, or an object wrapping the array under "dot_profiles".
func (s *profileStoreService) Reload() ([]models.Profile, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", s.path, err)
	}

	profiles, err := decodeProfiles(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid profile file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.cache = profiles
	s.loaded = true
	s.mu.Unlock()

	return profiles, nil
}

func decodeProfiles(raw []byte) ([]models.Profile, error) {
	var wrapped profileFile
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.DotProfiles != nil {
		return wrapped.DotProfiles, nil
	}

	var profiles []models.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf(`expected {"dot_profiles": [...]} or [...]: %w`, err)
	}
	return profiles, nil
}

// StartRefresher reloads the profile file on a fixed interval so edits on
// disk show up without a manual /reload. A non-positive interval disables
// the refresher.
func (s *profileStoreService) StartRefresher(interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("🔄 Profile refresher started (interval %s)\n", interval)

		for {
			select {
			case <-s.stopChan:
				log.Println("🔄 Profile refresher stopped")
				return
			case <-ticker.C:
				if _, err := s.Reload(); err != nil {
					log.Printf("⚠️  Failed to refresh profiles: %v\n", err)
				}
			}
		}
	}()
}

// StopRefresher stops the background refresher and waits for it to exit.
func (s *profileStoreService) StopRefresher() {
	close(s.stopChan)
	s.wg.Wait()
}
