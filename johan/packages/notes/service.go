package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found or forbidden")

// Service holds the package's business logic. Every persistence call is
// wrapped with a descriptive error, as the package convention asks.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateNote(ctx context.Context, userID int, title, content string, favourite bool) (*Note, error) {
	note := &Note{UserID: userID, Title: title, Content: content, Favourite: favourite}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *Service) GetNote(ctx context.Context, userID int, id uuid.UUID) (*Note, error) {
	var note Note
	err := s.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note: %w", err)
	}
	if note.UserID != userID {
		return nil, ErrNoteNotFound
	}
	return &note, nil
}

func (s *Service) ListNotes(ctx context.Context, userID int) ([]Note, error) {
	var all []Note
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&all).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return all, nil
}

func (s *Service) UpdateNote(ctx context.Context, userID int, id uuid.UUID, updates map[string]interface{}) (*Note, error) {
	if _, err := s.GetNote(ctx, userID, id); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&Note{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return s.GetNote(ctx, userID, id)
}

func (s *Service) DeleteNote(ctx context.Context, userID int, id uuid.UUID) error {
	if _, err := s.GetNote(ctx, userID, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Note{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
