package attachment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/salesdesk/internal/attachment"
	attachmenthttp "github.com/MrJamesThe3rd/salesdesk/internal/http/attachment"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func newRouter(t *testing.T, repo attachment.Repository) http.Handler {
	t.Helper()

	blobs, err := attachment.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/attachments", attachmenthttp.NewHandler(attachment.NewService(repo, blobs, 0)).Routes)

	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	require.NoError(t, mw.WriteField("note", "ignored"))

	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_UploadAndDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attachment.NewMockRepository(ctrl)
	router := newRouter(t, repo)
	owner := attachment.Owner{Kind: attachment.OwnerReceipt, ID: uuid.New()}

	var saved *attachment.Attachment

	repo.EXPECT().OwnerExists(gomock.Any(), owner).Return(true, nil)
	repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *attachment.Attachment) error {
		saved = a
		return nil
	})

	body, contentType := multipartBody(t, "file", "bank slip.pdf", pdf)
	req := httptest.NewRequest(http.MethodPost, "/attachments/receipt/"+owner.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		ID          uuid.UUID `json:"id"`
		Filename    string    `json:"filename"`
		ContentType string    `json:"content_type"`
		Size        int64     `json:"size"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "bank_slip.pdf", got.Filename)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, int64(len(pdf)), got.Size)

	repo.EXPECT().GetAttachment(gomock.Any(), got.ID).Return(saved, nil)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attachments/"+got.ID.String()+"/file", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bank_slip.pdf")

	content, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, pdf, content)
}

func TestHandler_UploadErrors(t *testing.T) {
	type testCase struct {
		name       string
		target     func(id uuid.UUID) string
		field      string
		setupMock  func(m *attachment.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "UnknownKind",
			target:     func(id uuid.UUID) string { return "/attachments/customer/" + id.String() },
			field:      "file",
			setupMock:  func(*attachment.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingFile",
			target:     func(id uuid.UUID) string { return "/attachments/contract/" + id.String() },
			field:      "upload",
			setupMock:  func(*attachment.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "OwnerGone",
			target: func(id uuid.UUID) string { return "/attachments/contract/" + id.String() },
			field:  "file",
			setupMock: func(m *attachment.MockRepository) {
				m.EXPECT().OwnerExists(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := attachment.NewMockRepository(ctrl)
			tt.setupMock(repo)

			body, contentType := multipartBody(t, tt.field, "contract.pdf", pdf)
			req := httptest.NewRequest(http.MethodPost, tt.target(uuid.New()), body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			newRouter(t, repo).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Bundle_UnknownOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attachment.NewMockRepository(ctrl)
	repo.EXPECT().OwnerExists(gomock.Any(), gomock.Any()).Return(false, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attachments/shipment/"+uuid.NewString()+"/bundle", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
