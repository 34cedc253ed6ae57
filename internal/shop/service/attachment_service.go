package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// AttachmentService stores file bodies in MinIO and their metadata rows in
// the database. Usable without a MinIO client for metadata-only deployments.
type AttachmentService struct {
	repo        *repository.AttachmentRepository
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(repo *repository.AttachmentRepository, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{repo: repo, minioClient: minioClient, bucketName: bucketName}
}

// Upload streams a file into the bucket and records its metadata against the
// referenced record (purchase order, job, or receiving event).
func (s *AttachmentService) Upload(ctx context.Context, refType, refID, fileName, contentType string, size int64, reader io.Reader, uploadedBy string) (*entity.Attachment, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	objectKey := fmt.Sprintf("attachments/%s/%s/%s%s",
		refType, time.Now().Format("2006/01"), uuid.New().String()[:8], filepath.Ext(fileName))

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	a := &entity.Attachment{
		ID:          uuid.New().String(),
		RefType:     refType,
		RefID:       refID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		ObjectKey:   objectKey,
		UploadedBy:  uploadedBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// PresignedURL returns a short-lived download link for an attachment.
func (s *AttachmentService) PresignedURL(ctx context.Context, id string) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, a.ObjectKey, 15*time.Minute, nil)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u.String(), nil
}

func (s *AttachmentService) ListByRef(ctx context.Context, refType, refID string) ([]entity.Attachment, error) {
	return s.repo.FindByRef(ctx, refType, refID)
}

// Delete removes the metadata row and, best-effort, the stored object.
func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.minioClient != nil {
		s.minioClient.RemoveObject(ctx, s.bucketName, a.ObjectKey, minio.RemoveObjectOptions{})
	}
	return nil
}
