package businessareas

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

type mockRepository struct {
	areas  map[int64]Area
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{areas: make(map[int64]Area), nextID: 1}
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := a
	return &out, nil
}

func (m *mockRepository) List(_ context.Context) ([]Area, error) {
	var out []Area
	for _, a := range m.areas {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, area Area) (int64, error) {
	for _, existing := range m.areas {
		if existing.Name == area.Name {
			return 0, fmt.Errorf("%w: business area %s", shared.ErrDuplicate, area.Name)
		}
	}
	area.ID = m.nextID
	m.nextID++
	m.areas[area.ID] = area
	return area.ID, nil
}

func (m *mockRepository) ExistsActive(_ context.Context, name string) (bool, error) {
	for _, a := range m.areas {
		if a.Name == name && a.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateTrimsAndRequiresName(t *testing.T) {
	svc := NewService(newMockRepository())

	area, err := svc.Create(context.Background(), CreateAreaRequest{Name: "  furniture  "})
	require.NoError(t, err)
	assert.Equal(t, "furniture", area.Name)
	assert.True(t, area.IsActive)

	_, err = svc.Create(context.Background(), CreateAreaRequest{Name: "   "})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateAreaRequest{Name: "interiors"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateAreaRequest{Name: "interiors"})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestExistsChecksActiveAreasOnly(t *testing.T) {
	repo := newMockRepository()
	repo.areas[1] = Area{ID: 1, Name: "furniture", IsActive: true}
	repo.areas[2] = Area{ID: 2, Name: "modular kitchens", IsActive: false}
	repo.nextID = 3
	svc := NewService(repo)

	ok, err := svc.Exists(context.Background(), "furniture")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), "modular kitchens")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Exists(context.Background(), "landscaping")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsBlankNameIsFalse(t *testing.T) {
	svc := NewService(newMockRepository())

	ok, err := svc.Exists(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, ok)
}
