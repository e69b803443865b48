package services

import (
	"context"
	"math/rand"
	"time"

	"vastra-api/models"
	"vastra-api/repository"

	"go.uber.org/zap"
)

// TryOnWorkerOptions bound the simulated processing delay.
type TryOnWorkerOptions struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultTryOnWorkerOptions matches the 2-5 second window the storefront
// always simulated.
func DefaultTryOnWorkerOptions() TryOnWorkerOptions {
	return TryOnWorkerOptions{MinDelay: 2 * time.Second, MaxDelay: 5 * time.Second}
}

// StartTryOnWorker starts a background worker that consumes queued try-on
// sessions, waits the simulated processing delay and completes them with a
// fabricated quality score and the garment image as the result.
func StartTryOnWorker(ctx context.Context, sessions repository.TryOnRepository, products repository.ProductRepository, opts TryOnWorkerOptions, logger *zap.Logger) {
	if sessions == nil || products == nil {
		logger.Warn("try-on worker not started: missing dependencies")
		return
	}

	go func() {
		logger.Info("try-on worker started")
		for {
			select {
			case <-ctx.Done():
				logger.Info("try-on worker stopping")
				return
			default:
			}

			id, err := sessions.Dequeue(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("try-on dequeue failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}

			session, err := sessions.Find(ctx, id)
			if err != nil {
				logger.Warn("queued try-on session vanished", zap.String("id", id.String()), zap.Error(err))
				continue
			}

			session.Status = models.TryOnStatusProcessing
			if err := sessions.Save(ctx, session); err != nil {
				logger.Error("failed to mark try-on processing", zap.String("id", id.String()), zap.Error(err))
				continue
			}

			delay := opts.MinDelay
			if opts.MaxDelay > opts.MinDelay {
				delay += time.Duration(rand.Int63n(int64(opts.MaxDelay - opts.MinDelay)))
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			garment, err := products.FindByID(ctx, session.GarmentID)
			if err != nil {
				session.Status = models.TryOnStatusFailed
				if saveErr := sessions.Save(ctx, session); saveErr != nil {
					logger.Error("failed to mark try-on failed", zap.String("id", id.String()), zap.Error(saveErr))
				}
				logger.Warn("try-on garment lookup failed", zap.String("id", id.String()), zap.Error(err))
				continue
			}

			now := time.Now()
			session.Status = models.TryOnStatusCompleted
			session.QualityScore = 0.85 + rand.Float64()*(0.98-0.85)
			session.ResultImageURL = garment.ImageURL
			session.CompletedAt = &now

			if err := sessions.Save(ctx, session); err != nil {
				logger.Error("failed to complete try-on session", zap.String("id", id.String()), zap.Error(err))
				continue
			}

			logger.Info("try-on session completed",
				zap.String("id", id.String()),
				zap.Float64("quality_score", session.QualityScore),
				zap.Duration("simulated_delay", delay),
			)
		}
	}()
}
