package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// Service stores uploaded files on disk under a per-folder layout and
// records their metadata. Stored names are generated, never derived from
// client input.
type Service struct {
	repo    Repository
	baseDir string
	maxSize int64
}

func NewService(repo Repository, baseDir string, maxSize int64) *Service {
	return &Service{repo: repo, baseDir: baseDir, maxSize: maxSize}
}

// Store writes the file and its metadata row. folder is a flat namespace
// segment like "receipts" or "site-photos".
func (s *Service) Store(ctx context.Context, src io.Reader, fileName, folder, contentType string, size int64, entityType *string, entityID *int64, uploadedBy int64) (*Upload, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", shared.ErrValidation)
	}
	if !folderPattern.MatchString(folder) {
		return nil, fmt.Errorf("%w: invalid folder name", shared.ErrValidation)
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", shared.ErrValidation, s.maxSize)
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	dest := filepath.Join(dir, storedName)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(src, s.maxSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if s.maxSize > 0 && written > s.maxSize {
		os.Remove(dest)
		return nil, fmt.Errorf("%w: file exceeds %d bytes", shared.ErrValidation, s.maxSize)
	}

	id, err := s.repo.Create(ctx, Upload{
		FileName:         filepath.Base(fileName),
		StoredName:       storedName,
		Folder:           folder,
		ContentType:      contentType,
		SizeBytes:        written,
		LinkedEntityType: entityType,
		LinkedEntityID:   entityID,
		UploadedBy:       uploadedBy,
	})
	if err != nil {
		os.Remove(dest)
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Path returns the on-disk location of a stored upload.
func (s *Service) Path(u *Upload) string {
	return filepath.Join(s.baseDir, u.Folder, u.StoredName)
}

func (s *Service) Get(ctx context.Context, id int64) (*Upload, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListForEntity(ctx context.Context, entityType string, entityID int64) ([]Upload, error) {
	return s.repo.ListForEntity(ctx, entityType, entityID)
}
