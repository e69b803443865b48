package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vastra-api/models"
	"vastra-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartTryOnInput is the payload for starting a simulated try-on.
type StartTryOnInput struct {
	GarmentID    uuid.UUID
	ImageDataURL string
}

// TryOnService manages simulated try-on sessions. There is no model behind
// them; a worker completes each session after a short artificial delay.
type TryOnService interface {
	Start(ctx context.Context, userID uuid.UUID, in StartTryOnInput) (*models.TryOnSession, *ServiceError)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.TryOnSession, *ServiceError)
}

type tryOnServiceImpl struct {
	sessions repository.TryOnRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewTryOnService(sessions repository.TryOnRepository, products repository.ProductRepository, logger *zap.Logger) TryOnService {
	return &tryOnServiceImpl{sessions: sessions, products: products, logger: logger}
}

// Start validates the garment, stores a QUEUED session and hands it to the
// worker queue.
func (s *tryOnServiceImpl) Start(ctx context.Context, userID uuid.UUID, in StartTryOnInput) (*models.TryOnSession, *ServiceError) {
	if !strings.HasPrefix(in.ImageDataURL, "data:image/") {
		return nil, &ServiceError{StatusCode: 400, Message: "image_data_url must be an image data URL"}
	}

	if _, err := s.products.FindByID(ctx, in.GarmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Garment not found"}
		}
		s.logger.Error("Failed to look up garment", zap.String("garment_id", in.GarmentID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to start try-on"}
	}

	session := &models.TryOnSession{
		ID:            uuid.New(),
		UserID:        userID,
		GarmentID:     in.GarmentID,
		Status:        models.TryOnStatusQueued,
		InputImageURL: in.ImageDataURL,
		CreatedAt:     time.Now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("Failed to save try-on session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to start try-on"}
	}
	if err := s.sessions.Enqueue(ctx, session.ID); err != nil {
		s.logger.Error("Failed to enqueue try-on session", zap.String("id", session.ID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to start try-on"}
	}

	s.logger.Info("Try-on session queued",
		zap.String("id", session.ID.String()),
		zap.String("garment_id", in.GarmentID.String()),
	)
	return session, nil
}

// Get returns the session, scoped to its owner. Foreign or expired sessions
// both read as not found.
func (s *tryOnServiceImpl) Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.TryOnSession, *ServiceError) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrTryOnNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Try-on session not found"}
		}
		s.logger.Error("Failed to load try-on session", zap.String("id", sessionID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load try-on session"}
	}
	if session.UserID != userID {
		return nil, &ServiceError{StatusCode: 404, Message: "Try-on session not found"}
	}
	return session, nil
}
