// Package scheduler
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
)

// CounterReconciler periodically recomputes offer click and application
// counters from the interaction log and corrects any drift. The counters on
// the offers table are a display cache; the interaction log is the source of
// truth, so a missed increment or manual data fix is repaired on the next run.
type CounterReconciler struct {
	offerRepo       repository.OfferRepository
	interactionRepo repository.OfferInteractionRepository
	logger          *log.Logger
	interval        time.Duration

	db *gorm.DB

	logFile *os.File
}

func NewCounterReconciler(
	offerRepo repository.OfferRepository,
	interactionRepo repository.OfferInteractionRepository,
	db *gorm.DB,
	interval time.Duration,
) *CounterReconciler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	s := &CounterReconciler{
		offerRepo:       offerRepo,
		interactionRepo: interactionRepo,
		db:              db,
		interval:        interval,
	}

	// Initialize reconciler-specific logger (to stdout and persistent file)
	if err := s.initReconcilerLogger(); err != nil {
		// Fallback to default stdout logger if file logger init fails
		s.logger = log.Default()
		s.logger.Printf("reconciler: failed to initialize file logger: %v", err)
	}

	return s
}

// initReconcilerLogger configures a logger that writes to both stdout and a persistent file under data/ (or /data)
func (s *CounterReconciler) initReconcilerLogger() error {
	// Prefer relative data/ then fallback to /data for containerized environments
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		logPath := filepath.Join(dir, "reconciler.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			continue
		}
		s.logFile = f
		mw := io.MultiWriter(os.Stdout, f)
		// log.Logger is goroutine-safe; include timestamps with microseconds and UTC
		s.logger = log.New(mw, "reconciler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create reconciler log file in any candidate directory")
}

// Start launches the reconciliation loop in a background goroutine and returns a stop function
func (s *CounterReconciler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				if s.logFile != nil {
					_ = s.logFile.Close()
				}
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *CounterReconciler) runOnce(ctx context.Context) {
	corrected, err := s.ReconcileOnce(ctx)
	if err != nil {
		s.logger.Printf("reconciler: run failed: %v", err)
		return
	}
	if corrected > 0 {
		s.logger.Printf("reconciler: corrected counters on %d offers", corrected)
	}
}

// ReconcileOnce recomputes counters for every offer and writes back the rows
// whose stored values drifted from the interaction log. Returns the number of
// corrected offers.
func (s *CounterReconciler) ReconcileOnce(ctx context.Context) (int, error) {
	counts, err := s.interactionRepo.CountsGroupedByOffer(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to tally interactions: %w", err)
	}

	offers, err := s.offerRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list offers: %w", err)
	}

	corrected := 0
	for _, offer := range offers {
		c := counts[offer.ID]
		if offer.ClickCount == c.Clicks && offer.ApplicationCount == c.Applications {
			continue
		}

		repaired, err := s.repairOffer(ctx, offer, c)
		if err != nil {
			return corrected, fmt.Errorf("failed to correct counters for offer %d: %w", offer.ID, err)
		}
		if !repaired {
			// Counters moved since we read them; leave the row for the next run
			continue
		}

		s.logger.Printf("reconciler: offer %d counters %d/%d -> %d/%d",
			offer.ID, offer.ClickCount, offer.ApplicationCount, c.Clicks, c.Applications)
		corrected++
	}

	return corrected, nil
}

// repairOffer writes the recounted values only if the row still holds the
// counters we read. A concurrent interaction landing between the recount and
// this write changes the row, the guard fails, and the increment survives.
func (s *CounterReconciler) repairOffer(ctx context.Context, offer *models.Offer, c repository.InteractionCounts) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ? AND click_count = ? AND application_count = ?",
			offer.ID, offer.ClickCount, offer.ApplicationCount).
		Updates(map[string]any{
			"click_count":       c.Clicks,
			"application_count": c.Applications,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
