package partner

import (
	"context"
	"testing"

	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestClientService_Create(t *testing.T) {
	t.Run("creates a client", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Client")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateClientRequest{
			FirstName: "Marie",
			LastName:  "Joseph",
			Emails:    []string{"marie@example.com"},
			Phone:     "+509 3456 7890",
			Addresses: []string{"Rue Capois, Port-au-Prince"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Marie", resp.FirstName)
		assert.Equal(t, "Marie Joseph", resp.FullName)
		assert.Len(t, resp.Emails, 1)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty first name", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		_, err := svc.Create(context.Background(), CreateClientRequest{
			FirstName: "",
			LastName:  "Joseph",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		_, err := svc.Create(context.Background(), CreateClientRequest{
			FirstName: "Marie",
			LastName:  "Joseph",
			Emails:    []string{"not-an-email"},
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestClientService_Update(t *testing.T) {
	t.Run("updates an existing client", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		client, err := partner.NewClient("Jean", "Baptiste", nil, "", nil)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		repo.On("Save", mock.Anything, client).Return(nil)

		resp, err := svc.Update(context.Background(), client.ID, UpdateClientRequest{
			FirstName: "Jean",
			LastName:  "Pierre",
			Phone:     "+509 2222 3333",
		})

		require.NoError(t, err)
		assert.Equal(t, "Pierre", resp.LastName)
		assert.Equal(t, "+509 2222 3333", resp.Phone)
		repo.AssertExpectations(t)
	})

	t.Run("returns not found for unknown client", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(context.Background(), id, UpdateClientRequest{
			FirstName: "Jean",
			LastName:  "Pierre",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientService_List(t *testing.T) {
	t.Run("applies default pagination", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		c1, _ := partner.NewClient("Marie", "Joseph", nil, "", nil)
		c2, _ := partner.NewClient("Jean", "Baptiste", nil, "", nil)

		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "last_name"
		})).Return([]partner.Client{*c1, *c2}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

		responses, total, err := svc.List(context.Background(), ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, responses, 2)
		repo.AssertExpectations(t)
	})
}

func TestClientService_Delete(t *testing.T) {
	t.Run("deletes an existing client", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo)

		client, _ := partner.NewClient("Marie", "Joseph", nil, "", nil)
		repo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		repo.On("Delete", mock.Anything, client.ID).Return(nil)

		err := svc.Delete(context.Background(), client.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
