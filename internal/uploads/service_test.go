package uploads

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	uploads map[int64]Upload
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{uploads: make(map[int64]Upload), nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, u Upload) (int64, error) {
	u.ID = m.nextID
	m.nextID++
	m.uploads[u.ID] = u
	return u.ID, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Upload, error) {
	u, ok := m.uploads[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := u
	return &out, nil
}

func (m *mockRepository) ListForEntity(_ context.Context, entityType string, entityID int64) ([]Upload, error) {
	var out []Upload
	for _, u := range m.uploads {
		if u.LinkedEntityType != nil && *u.LinkedEntityType == entityType &&
			u.LinkedEntityID != nil && *u.LinkedEntityID == entityID {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestStoreGeneratesNameAndKeepsOriginal(t *testing.T) {
	svc := NewService(newMockRepository(), t.TempDir(), 1<<20)

	entityType := "petty_cash"
	entityID := int64(5)
	u, err := svc.Store(context.Background(), strings.NewReader("receipt body"),
		"Fuel Receipt.PDF", "receipts", "application/pdf", 12, &entityType, &entityID, 3)
	require.NoError(t, err)

	assert.Equal(t, "Fuel Receipt.PDF", u.FileName)
	assert.NotEqual(t, u.FileName, u.StoredName)
	assert.True(t, strings.HasSuffix(u.StoredName, ".pdf"))
	assert.Equal(t, int64(12), u.SizeBytes)
	assert.FileExists(t, svc.Path(u))
}

func TestStoreRejectsBadFolderAndEmptyName(t *testing.T) {
	svc := NewService(newMockRepository(), t.TempDir(), 1<<20)

	_, err := svc.Store(context.Background(), strings.NewReader("x"),
		"a.txt", "../escape", "text/plain", 1, nil, nil, 3)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Store(context.Background(), strings.NewReader("x"),
		"  ", "receipts", "text/plain", 1, nil, nil, 3)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestStoreEnforcesSizeLimit(t *testing.T) {
	svc := NewService(newMockRepository(), t.TempDir(), 8)

	_, err := svc.Store(context.Background(), strings.NewReader("this body is larger than eight bytes"),
		"big.txt", "general", "text/plain", 36, nil, nil, 3)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListForEntity(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, t.TempDir(), 1<<20)

	entityType := "quotation"
	entityID := int64(7)
	_, err := svc.Store(context.Background(), strings.NewReader("a"),
		"design.png", "designs", "image/png", 1, &entityType, &entityID, 3)
	require.NoError(t, err)
	_, err = svc.Store(context.Background(), strings.NewReader("b"),
		"other.png", "designs", "image/png", 1, nil, nil, 3)
	require.NoError(t, err)

	got, err := svc.ListForEntity(context.Background(), "quotation", 7)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
