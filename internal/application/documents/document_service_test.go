package documents

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/documents"
	"github.com/lawmatch/backend/internal/domain/shared"
)

// MockDocumentRepository is a mock implementation of DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*documents.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter documents.DocumentFilter) ([]documents.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documents.Document), args.Error(1)
}

func (m *MockDocumentRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, fileName string) (bool, error) {
	args := m.Called(ctx, ownerID, folderID, fileName)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter documents.DocumentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, d *documents.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFolderRepository is a mock implementation of FolderRepository
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) FindByID(ctx context.Context, id uuid.UUID) (*documents.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindByOwnerAndParent(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID) ([]documents.Folder, error) {
	args := m.Called(ctx, ownerID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documents.Folder), args.Error(1)
}

func (m *MockFolderRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, parentID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockFolderRepository) FindByMatter(ctx context.Context, matterID uuid.UUID) ([]documents.Folder, error) {
	args := m.Called(ctx, matterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documents.Folder), args.Error(1)
}

func (m *MockFolderRepository) Save(ctx context.Context, f *documents.Folder) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key, fileName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, fileName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type serviceMocks struct {
	documentRepo *MockDocumentRepository
	folderRepo   *MockFolderRepository
	storage      *MockObjectStorage
}

func newService(t *testing.T) (*DocumentService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		documentRepo: new(MockDocumentRepository),
		folderRepo:   new(MockFolderRepository),
		storage:      new(MockObjectStorage),
	}
	svc := NewDocumentService(m.documentRepo, m.folderRepo, m.storage, zap.NewNop())
	return svc, m
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("uploads and records a document", func(t *testing.T) {
		svc, m := newService(t)
		body := strings.NewReader("agreement text")

		m.documentRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "agreement.pdf").Return(false, nil)
		m.storage.On("Upload", ctx, mock.AnythingOfType("string"), body, int64(14), "application/pdf").Return(nil)
		m.documentRepo.On("Save", ctx, mock.AnythingOfType("*documents.Document")).Return(nil)

		doc, err := svc.UploadDocument(ctx, UploadDocumentInput{
			OwnerID:  ownerID,
			FileName: "agreement.pdf",
			MimeType: "application/pdf",
			Size:     14,
			Body:     body,
		})
		require.NoError(t, err)
		assert.Equal(t, "agreement.pdf", doc.FileName)
		assert.Contains(t, doc.StorageKey, "documents/"+ownerID.String()+"/")
	})

	t.Run("colliding names get a numeric suffix", func(t *testing.T) {
		svc, m := newService(t)
		body := strings.NewReader("v2")

		m.documentRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "agreement.pdf").Return(true, nil)
		m.documentRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "agreement (1).pdf").Return(false, nil)
		m.storage.On("Upload", ctx, mock.AnythingOfType("string"), body, int64(2), "application/pdf").Return(nil)
		m.documentRepo.On("Save", ctx, mock.AnythingOfType("*documents.Document")).Return(nil)

		doc, err := svc.UploadDocument(ctx, UploadDocumentInput{
			OwnerID:  ownerID,
			FileName: "agreement.pdf",
			MimeType: "application/pdf",
			Size:     2,
			Body:     body,
		})
		require.NoError(t, err)
		assert.Equal(t, "agreement (1).pdf", doc.FileName)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UploadDocument(ctx, UploadDocumentInput{
			OwnerID:  ownerID,
			FileName: "dump.bin",
			Size:     MaxUploadSize + 1,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FILE_TOO_LARGE", domainErr.Code)
	})

	t.Run("cleans up the object when the record fails", func(t *testing.T) {
		svc, m := newService(t)
		body := strings.NewReader("x")

		m.documentRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "a.txt").Return(false, nil)
		m.storage.On("Upload", ctx, mock.AnythingOfType("string"), body, int64(1), "text/plain").Return(nil)
		m.documentRepo.On("Save", ctx, mock.AnythingOfType("*documents.Document")).Return(assert.AnError)
		m.storage.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := svc.UploadDocument(ctx, UploadDocumentInput{
			OwnerID:  ownerID,
			FileName: "a.txt",
			MimeType: "text/plain",
			Size:     1,
			Body:     body,
		})
		require.Error(t, err)
		m.storage.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("string"))
	})
}

func TestGetDownloadLink(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("presigns a download for the owner", func(t *testing.T) {
		svc, m := newService(t)
		doc, err := documents.NewDocument(ownerID, nil, nil, "agreement.pdf", "application/pdf", 14, "documents/key")
		require.NoError(t, err)

		m.documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
		m.storage.On("PresignDownload", ctx, "documents/key", "agreement.pdf", DownloadLinkTTL).
			Return("https://storage.example.com/signed", nil)

		link, err := svc.GetDownloadLink(ctx, ownerID, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/signed", link.URL)
		assert.Equal(t, int64(900), link.ExpiresIn)
	})

	t.Run("another user is refused", func(t *testing.T) {
		svc, m := newService(t)
		doc, err := documents.NewDocument(ownerID, nil, nil, "agreement.pdf", "application/pdf", 14, "documents/key")
		require.NoError(t, err)

		m.documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)

		_, err = svc.GetDownloadLink(ctx, uuid.New(), doc.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestFolders(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("creates a top level folder", func(t *testing.T) {
		svc, m := newService(t)
		m.folderRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "Contracts").Return(false, nil)
		m.folderRepo.On("Save", ctx, mock.AnythingOfType("*documents.Folder")).Return(nil)

		folder, err := svc.CreateFolder(ctx, CreateFolderInput{OwnerID: ownerID, Name: "Contracts"})
		require.NoError(t, err)
		assert.Equal(t, "Contracts", folder.Name)
		assert.Nil(t, folder.ParentID)
	})

	t.Run("duplicate folder names are rejected", func(t *testing.T) {
		svc, m := newService(t)
		m.folderRepo.On("ExistsByName", ctx, ownerID, (*uuid.UUID)(nil), "Contracts").Return(true, nil)

		_, err := svc.CreateFolder(ctx, CreateFolderInput{OwnerID: ownerID, Name: "Contracts"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NAME_TAKEN", domainErr.Code)
	})

	t.Run("a folder with contents cannot be deleted", func(t *testing.T) {
		svc, m := newService(t)
		folder, err := documents.NewFolder(ownerID, nil, nil, "Contracts")
		require.NoError(t, err)

		m.folderRepo.On("FindByID", ctx, folder.ID).Return(folder, nil)
		m.folderRepo.On("FindByOwnerAndParent", ctx, ownerID, &folder.ID).Return([]documents.Folder{}, nil)
		m.documentRepo.On("Count", ctx, mock.AnythingOfType("documents.DocumentFilter")).Return(int64(3), nil)

		err = svc.DeleteFolder(ctx, ownerID, folder.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FOLDER_NOT_EMPTY", domainErr.Code)
	})
}

func TestMoveDocument(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("move deduplicates within the target folder", func(t *testing.T) {
		svc, m := newService(t)
		doc, err := documents.NewDocument(ownerID, nil, nil, "notes.txt", "text/plain", 10, "documents/key")
		require.NoError(t, err)
		folder, err := documents.NewFolder(ownerID, nil, nil, "Archive")
		require.NoError(t, err)

		m.documentRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
		m.folderRepo.On("FindByID", ctx, folder.ID).Return(folder, nil)
		m.documentRepo.On("ExistsByName", ctx, ownerID, &folder.ID, "notes.txt").Return(true, nil)
		m.documentRepo.On("ExistsByName", ctx, ownerID, &folder.ID, "notes (1).txt").Return(false, nil)
		m.documentRepo.On("Save", ctx, doc).Return(nil)

		moved, err := svc.MoveDocument(ctx, ownerID, doc.ID, &folder.ID)
		require.NoError(t, err)
		assert.Equal(t, "notes (1).txt", moved.FileName)
		require.NotNil(t, moved.FolderID)
		assert.Equal(t, folder.ID, *moved.FolderID)
	})
}
