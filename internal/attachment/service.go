package attachment

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxSize caps uploads when no limit is configured.
const DefaultMaxSize = 10 << 20

// sniffLen is how much of an upload is buffered for content detection.
const sniffLen = 3072

var allowedTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"text/plain",
	"application/zip",
	"application/msword",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=attachment
type Repository interface {
	CreateAttachment(ctx context.Context, a *Attachment) error
	GetAttachment(ctx context.Context, id uuid.UUID) (*Attachment, error)
	ListAttachments(ctx context.Context, owner Owner) ([]*Attachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
	OwnerExists(ctx context.Context, owner Owner) (bool, error)
}

type Service struct {
	repo    Repository
	blobs   BlobStore
	maxSize int64
}

func NewService(repo Repository, blobs BlobStore, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Service{repo: repo, blobs: blobs, maxSize: maxSize}
}

type UploadParams struct {
	Owner     Owner
	Filename  string
	CreatorID *uuid.UUID
}

// Upload stores r for the owner. The content type is detected from the bytes, not taken from
// the client.
func (s *Service) Upload(ctx context.Context, params UploadParams, r io.Reader) (*Attachment, error) {
	if err := s.checkOwner(ctx, params.Owner); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	head = head[:n]

	mt := mimetype.Detect(head)
	if !allowed(mt) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	a := &Attachment{
		ID:          uuid.New(),
		Owner:       params.Owner,
		Filename:    sanitizeFilename(params.Filename, mt.Extension()),
		ContentType: mt.String(),
		CreatorID:   params.CreatorID,
	}

	// One byte past the limit is enough to tell an oversized upload apart.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize+1)

	size, err := s.blobs.Put(ctx, a.ID.String(), body)
	if err != nil {
		return nil, fmt.Errorf("storing attachment: %w", err)
	}

	if size > s.maxSize {
		s.removeBlob(ctx, a.ID)
		return nil, ErrTooLarge
	}

	a.Size = size

	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		s.removeBlob(ctx, a.ID)
		return nil, err
	}

	return a, nil
}

func (s *Service) List(ctx context.Context, owner Owner) ([]*Attachment, error) {
	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	return s.repo.ListAttachments(ctx, owner)
}

// Open returns the attachment metadata and its content. The caller closes the reader.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error) {
	a, err := s.repo.GetAttachment(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, a.ID.String())
	if err != nil {
		return nil, nil, err
	}

	return a, rc, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAttachment(ctx, id); err != nil {
		return err
	}

	s.removeBlob(ctx, id)

	return nil
}

// Bundle writes items into a zip archive, renaming repeated filenames so none is overwritten.
// Callers list the items first, so a missing owner is reported before anything is written.
func (s *Service) Bundle(ctx context.Context, items []*Attachment, w io.Writer) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(items))

	for _, a := range items {
		if err := s.addToZip(ctx, zw, a, uniqueName(seen, a.Filename)); err != nil {
			return fmt.Errorf("bundling %s: %w", a.ID, err)
		}
	}

	return zw.Close()
}

func (s *Service) addToZip(ctx context.Context, zw *zip.Writer, a *Attachment, name string) error {
	rc, err := s.blobs.Open(ctx, a.ID.String())
	if err != nil {
		return err
	}
	defer rc.Close()

	zf, err := zw.Create(name)
	if err != nil {
		return err
	}

	_, err = io.Copy(zf, rc)

	return err
}

func (s *Service) checkOwner(ctx context.Context, owner Owner) error {
	if !owner.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrOwnerNotFound, owner.Kind)
	}

	ok, err := s.repo.OwnerExists(ctx, owner)
	if err != nil {
		return err
	}

	if !ok {
		return ErrOwnerNotFound
	}

	return nil
}

func (s *Service) removeBlob(ctx context.Context, id uuid.UUID) {
	if err := s.blobs.Delete(ctx, id.String()); err != nil {
		slog.Warn("failed to remove attachment blob", "id", id, "error", err)
	}
}

func allowed(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), allowedTypes...) {
			return true
		}
	}

	return false
}

// sanitizeFilename keeps the base name with a safe character set, falling back to a name built
// from the detected extension.
func sanitizeFilename(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		case r > 127:
			return r
		default:
			return '_'
		}
	}, base)

	safe = strings.TrimLeft(safe, ".")
	if safe == "" {
		return "attachment" + ext
	}

	if filepath.Ext(safe) == "" {
		safe += ext
	}

	return safe
}

func uniqueName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1

	if n == 0 {
		return name
	}

	ext := filepath.Ext(name)

	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}
