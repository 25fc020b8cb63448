package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/jackc/pgx/v5"
)

const (
	MaxAvatarSize = 5 << 20
	sniffLength   = 3072
)

type avatarStore interface {
	Upsert(ctx context.Context, userID int64, avatarURL string) (*models.Avatar, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Avatar, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type AvatarService struct {
	avatarRepo     avatarStore
	storageService StorageService
	now            func() time.Time
}

func NewAvatarService(avatarRepo avatarStore, storageService StorageService) *AvatarService {
	return &AvatarService{
		avatarRepo:     avatarRepo,
		storageService: storageService,
		now:            time.Now,
	}
}

// ValidateAvatar checks size and type before anything is sent to storage.
// A missing or generic declared type is replaced with one sniffed from the
// first bytes of the body.
func ValidateAvatar(upload *AvatarUpload) error {
	if upload == nil || upload.Body == nil || upload.Size <= 0 {
		return ErrEmptyAvatar
	}
	if upload.Size > MaxAvatarSize {
		return ErrAvatarTooLarge
	}

	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		head := make([]byte, sniffLength)
		n, err := io.ReadFull(upload.Body, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read avatar: %w", err)
		}
		contentType = mimetype.Detect(head[:n]).String()
		upload.Body = io.MultiReader(bytes.NewReader(head[:n]), upload.Body)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidAvatarType
	}
	upload.ContentType = contentType
	return nil
}

func (s *AvatarService) Upload(ctx context.Context, userID int64, upload AvatarUpload) (*models.Avatar, error) {
	if err := ValidateAvatar(&upload); err != nil {
		return nil, err
	}
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}

	objectPath := buildAvatarPath(userID, upload.Filename, upload.ContentType, s.now())
	if err := s.storageService.Upload(ctx, objectPath, upload.Body, upload.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvatarUpload, err)
	}

	avatarURL := s.storageService.PublicURL(objectPath)
	avatar, err := s.avatarRepo.Upsert(ctx, userID, avatarURL)
	if err != nil {
		if cleanupErr := s.storageService.Delete(ctx, objectPath); cleanupErr != nil {
			log.Printf("avatar: orphaned object %s: %v", objectPath, cleanupErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrAvatarUpload, err)
	}
	return avatar, nil
}

// Get returns nil without error when the user has no avatar.
func (s *AvatarService) Get(ctx context.Context, userID int64) (*models.Avatar, error) {
	avatar, err := s.avatarRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return avatar, nil
}

// Remove drops the avatar row. The stored object is left in the bucket.
func (s *AvatarService) Remove(ctx context.Context, userID int64) error {
	return s.avatarRepo.DeleteByUserID(ctx, userID)
}

func buildAvatarPath(userID int64, filename, contentType string, at time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
	if ext == "" {
		if detected := mimetype.Lookup(contentType); detected != nil {
			ext = strings.TrimPrefix(detected.Extension(), ".")
		}
	}
	if ext == "" {
		ext = "img"
	}
	return fmt.Sprintf("%d/%d.%s", userID, at.UnixMilli(), ext)
}
