package services

import (
	"context"
	"encoding/json"
	"log"

	"kds-backend/internal/cache"
	"kds-backend/internal/models"
)

// MonitorService is the registry for display configurations. Persistence
// plus the bucket-disjointness invariant; no other business logic lives
// here. Reads go through the Redis cache because every display poll
// resolves its monitor first.
type MonitorService struct {
	Monitors MonitorStore
}

func NewMonitorService(monitors MonitorStore) *MonitorService {
	return &MonitorService{Monitors: monitors}
}

func (s *MonitorService) Create(ctx context.Context, req *models.MonitorRequest) (*models.Monitor, error) {
	m := req.ToMonitor()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.Monitors.Create(ctx, m); err != nil {
		return nil, err
	}
	cache.InvalidateMonitor(ctx, m.ID, m.LocationID)
	return m, nil
}

func (s *MonitorService) Get(ctx context.Context, id int) (*models.Monitor, error) {
	if data, ok := cache.GetCachedMonitor(ctx, id); ok {
		var m models.Monitor
		if err := json.Unmarshal(data, &m); err == nil {
			return &m, nil
		}
	}

	m, err := s.Monitors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(m); err == nil {
		cache.CacheMonitor(ctx, id, data)
	}
	return m, nil
}

func (s *MonitorService) ListActive(ctx context.Context, locationID int) ([]*models.Monitor, error) {
	if data, ok := cache.GetCachedMonitorList(ctx, locationID); ok {
		var monitors []*models.Monitor
		if err := json.Unmarshal(data, &monitors); err == nil {
			return monitors, nil
		}
	}

	monitors, err := s.Monitors.ListActive(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(monitors); err == nil {
		cache.CacheMonitorList(ctx, locationID, data)
	}
	return monitors, nil
}

func (s *MonitorService) Update(ctx context.Context, id int, req *models.MonitorRequest) (*models.Monitor, error) {
	// Confirm the monitor exists before validating the replacement, so the
	// UI can tell a 404 from a 422.
	existing, err := s.Monitors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m := req.ToMonitor()
	m.ID = id
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.Monitors.Update(ctx, m); err != nil {
		return nil, err
	}

	cache.InvalidateMonitor(ctx, id, existing.LocationID)
	if m.LocationID != existing.LocationID {
		cache.InvalidateMonitor(ctx, id, m.LocationID)
	}
	return m, nil
}

func (s *MonitorService) Delete(ctx context.Context, id int) error {
	existing, err := s.Monitors.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Monitors.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateMonitor(ctx, id, existing.LocationID)
	log.Printf("[Monitors] Deleted monitor %d (%s)", id, existing.Name)
	return nil
}
