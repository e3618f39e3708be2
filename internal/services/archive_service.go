package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	appconfig "kds-backend/internal/config"
	"kds-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveService exports the previous day's audit events to S3-compatible
// object storage once per day. The event table is append-only; the archive
// is the long-term copy reporting reads after rows age out of Postgres.
type ArchiveService struct {
	cfg    *appconfig.Config
	events EventStore

	ticker   *time.Ticker
	stopChan chan struct{}
}

func NewArchiveService(cfg *appconfig.Config, events EventStore) *ArchiveService {
	return &ArchiveService{cfg: cfg, events: events, stopChan: make(chan struct{})}
}

// Start launches the daily export loop. No-op when archiving is disabled.
func (s *ArchiveService) Start() {
	if !s.cfg.Archive.Enabled {
		log.Println("[Archive] Disabled, skipping scheduler")
		return
	}

	s.ticker = time.NewTicker(24 * time.Hour)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.runExport()
			case <-s.stopChan:
				return
			}
		}
	}()
	log.Println("[Archive] Daily event export scheduled")
}

// Stop halts the export loop.
func (s *ArchiveService) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stopChan)
		s.ticker = nil
	}
}

// runExport uploads yesterday's events as one JSON object.
func (s *ArchiveService) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	yesterday := timeutil.Now().AddDate(0, 0, -1)
	if err := s.ExportDay(ctx, yesterday); err != nil {
		log.Printf("[Archive] Export failed: %v", err)
	}
}

// ExportDay uploads all events for one calendar day to the archive bucket.
func (s *ArchiveService) ExportDay(ctx context.Context, day time.Time) error {
	from := timeutil.StartOfDay(day)
	to := from.AddDate(0, 0, 1)

	events, err := s.events.ListBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		log.Printf("[Archive] No events for %s, nothing to export", from.Format(timeutil.DateLayout))
		return nil
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Archive.AccessKey,
			s.cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Archive.Region),
	)
	if err != nil {
		return fmt.Errorf("failed to configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Archive.Endpoint)
		}
	})

	key := fmt.Sprintf("events/%s.json", from.Format(timeutil.DateLayout))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Archive.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("[Archive] Exported %d events to %s", len(events), key)
	return nil
}
