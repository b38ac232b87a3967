package customer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/storage/pg"
)

type fakeRepo struct {
	customers map[int64]*model.Customer
	byEmail   map[string]*model.Customer
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		customers: map[int64]*model.Customer{},
		byEmail:   map[string]*model.Customer{},
		nextID:    1,
	}
}

func (f *fakeRepo) GetCustomer(_ context.Context, storeID, id int64) (*model.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.StoreID != storeID {
		return nil, pg.ErrNoRows
	}
	return c, nil
}

func (f *fakeRepo) UpsertGuestCustomer(_ context.Context, storeID int64, guest *model.GuestInfo) (*model.Customer, error) {
	if c, ok := f.byEmail[guest.Email]; ok && c.StoreID == storeID {
		c.Name = guest.Name
		c.Phone = guest.Phone
		return c, nil
	}
	c := &model.Customer{
		ID:      f.nextID,
		StoreID: storeID,
		Name:    guest.Name,
		Email:   guest.Email,
		Phone:   guest.Phone,
		Status:  model.CustomerActive,
	}
	f.nextID++
	f.customers[c.ID] = c
	f.byEmail[c.Email] = c
	return c, nil
}

func newTestService(repo Repo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestResolveAuthenticated(t *testing.T) {
	repo := newFakeRepo()
	repo.customers[42] = &model.Customer{ID: 42, StoreID: 1, Email: "kim@example.com"}
	svc := newTestService(repo)

	c, err := svc.Resolve(context.Background(), 1, &AuthIdentity{CustomerID: 42, StoreID: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
}

func TestResolveAuthStoreMismatch(t *testing.T) {
	repo := newFakeRepo()
	repo.customers[42] = &model.Customer{ID: 42, StoreID: 1}
	svc := newTestService(repo)

	// Token issued for another store must not act in this one.
	_, err := svc.Resolve(context.Background(), 2, &AuthIdentity{CustomerID: 42, StoreID: 1}, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveAuthUnknownCustomer(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Resolve(context.Background(), 1, &AuthIdentity{CustomerID: 7, StoreID: 1}, nil)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestResolveGuestIdempotent(t *testing.T) {
	svc := newTestService(newFakeRepo())
	guest := &model.GuestInfo{Name: "Sam", Email: "sam@example.com", Phone: "555-0101"}

	first, err := svc.Resolve(context.Background(), 1, nil, guest)
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), 1, nil, guest)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same (email, store) must resolve to the same customer")
}

func TestResolveGuestNormalizesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	first, err := svc.Resolve(context.Background(), 1, nil,
		&model.GuestInfo{Name: "Sam", Email: "Sam@Example.com"})
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), 1, nil,
		&model.GuestInfo{Name: "Sam", Email: " sam@example.com "})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "sam@example.com", first.Email)
}

func TestResolveGuestSeparateStores(t *testing.T) {
	svc := newTestService(newFakeRepo())
	guest := &model.GuestInfo{Name: "Sam", Email: "sam@example.com"}

	first, err := svc.Resolve(context.Background(), 1, nil, guest)
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), 2, nil, guest)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "customer identity is scoped per store")
}

func TestResolveGuestInvalid(t *testing.T) {
	svc := newTestService(newFakeRepo())

	tests := []struct {
		name  string
		guest *model.GuestInfo
	}{
		{"missing email", &model.GuestInfo{Name: "Sam"}},
		{"missing name", &model.GuestInfo{Email: "sam@example.com"}},
		{"malformed email", &model.GuestInfo{Name: "Sam", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), 1, nil, tt.guest)
			require.ErrorIs(t, err, ErrGuestInfoInvalid)
		})
	}
}

func TestResolveNeitherIdentity(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Resolve(context.Background(), 1, nil, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
