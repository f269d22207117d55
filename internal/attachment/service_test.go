package attachment_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// ELF header: a type no one should be attaching.
var binary = []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0x3e, 0}

var errDB = errors.New("db down")

func newService(t *testing.T, ctrl *gomock.Controller, maxSize int64) (*attachment.Service, *attachment.MockRepository, string) {
	t.Helper()

	dir := t.TempDir()
	blobs, err := attachment.NewDiskStore(dir)
	require.NoError(t, err)

	repo := attachment.NewMockRepository(ctrl)

	return attachment.NewService(repo, blobs, maxSize), repo, dir
}

func TestService_Upload(t *testing.T) {
	owner := attachment.Owner{Kind: attachment.OwnerInvoice, ID: uuid.New()}

	type testCase struct {
		name      string
		filename  string
		content   []byte
		maxSize   int64
		setupMock func(m *attachment.MockRepository)
		wantErr   error
		wantName  string
		wantType  string
	}

	tests := []testCase{
		{
			name:     "PDF",
			filename: "../../etc/invoice 2024.pdf",
			content:  pdf,
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
				m.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName: "invoice_2024.pdf",
			wantType: "application/pdf",
		},
		{
			name:     "PlainTextWithoutExtension",
			filename: "notes",
			content:  []byte("delivery on the 3rd, gate B"),
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
				m.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName: "notes.txt",
			wantType: "text/plain",
		},
		{
			name:     "Executable",
			filename: "invoice.pdf",
			content:  binary,
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
			},
			wantErr: attachment.ErrUnsupportedType,
		},
		{
			name:     "TooLarge",
			filename: "big.txt",
			content:  []byte(strings.Repeat("a", 64)),
			maxSize:  32,
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
			},
			wantErr: attachment.ErrTooLarge,
		},
		{
			name:     "UnknownOwner",
			filename: "invoice.pdf",
			content:  pdf,
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(false, nil)
			},
			wantErr: attachment.ErrOwnerNotFound,
		},
		{
			name:     "MetadataFailure",
			filename: "invoice.pdf",
			content:  pdf,
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
				m.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo, dir := newService(t, ctrl, tt.maxSize)
			tt.setupMock(repo)

			got, err := svc.Upload(context.Background(), attachment.UploadParams{Owner: owner, Filename: tt.filename}, bytes.NewReader(tt.content))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				entries, readErr := os.ReadDir(dir)
				require.NoError(t, readErr)
				assert.Empty(t, entries, "no blob is left behind")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Filename)
			assert.True(t, strings.HasPrefix(got.ContentType, tt.wantType), got.ContentType)
			assert.Equal(t, int64(len(tt.content)), got.Size)

			stored, err := os.ReadFile(filepath.Join(dir, got.ID.String()))
			require.NoError(t, err)
			assert.Equal(t, tt.content, stored)
		})
	}
}

func TestService_OpenAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, dir := newService(t, ctrl, 0)
	owner := attachment.Owner{Kind: attachment.OwnerContract, ID: uuid.New()}

	var saved *attachment.Attachment

	repo.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
	repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *attachment.Attachment) error {
		saved = a
		return nil
	})

	a, err := svc.Upload(context.Background(), attachment.UploadParams{Owner: owner, Filename: "contract.pdf"}, bytes.NewReader(pdf))
	require.NoError(t, err)

	repo.EXPECT().GetAttachment(gomock.Any(), a.ID).Return(saved, nil)

	meta, rc, err := svc.Open(context.Background(), a.ID)
	require.NoError(t, err)

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pdf, content)
	assert.Equal(t, "contract.pdf", meta.Filename)

	repo.EXPECT().DeleteAttachment(gomock.Any(), a.ID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), a.ID))

	_, err = os.Stat(filepath.Join(dir, a.ID.String()))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestService_Bundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newService(t, ctrl, 0)
	owner := attachment.Owner{Kind: attachment.OwnerShipment, ID: uuid.New()}

	var saved []*attachment.Attachment

	repo.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil).Times(3)
	repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *attachment.Attachment) error {
		saved = append(saved, a)
		return nil
	}).Times(2)

	for i := 0; i < 2; i++ {
		_, err := svc.Upload(context.Background(), attachment.UploadParams{Owner: owner, Filename: "waybill.pdf"}, bytes.NewReader(pdf))
		require.NoError(t, err)
	}

	repo.EXPECT().ListAttachments(gomock.Any(), owner).DoAndReturn(func(context.Context, attachment.Owner) ([]*attachment.Attachment, error) {
		return saved, nil
	})

	items, err := svc.List(context.Background(), owner)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Bundle(context.Background(), items, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"waybill.pdf", "waybill_1.pdf"}, names)
}

func TestDiskStore_RejectsPathKeys(t *testing.T) {
	blobs, err := attachment.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = blobs.Put(context.Background(), "../escape", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = blobs.Open(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, attachment.ErrNotFound)
}
