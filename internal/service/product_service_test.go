package service

import (
	"context"
	"testing"

	"product-api/internal/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func strp(s string) *string     { return &s }
func floatp(f float64) *float64 { return &f }

// mockProductRepository is a map-backed stand-in for the Mongo repository.
type mockProductRepository struct {
	store       map[string]model.Product
	order       []string
	updateCalls int
}

func newMockRepo() *mockProductRepository {
	return &mockProductRepository{store: make(map[string]model.Product)}
}

func (m *mockProductRepository) Insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.ID = model.NewProductID()
	m.store[product.ID.String()] = *product
	m.order = append(m.order, product.ID.String())
	stored := m.store[product.ID.String()]
	return &stored, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	product, ok := m.store[id.String()]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &product, nil
}

func (m *mockProductRepository) FindAll(ctx context.Context, limit int64) ([]model.Product, error) {
	products := make([]model.Product, 0, len(m.store))
	for _, key := range m.order {
		if product, ok := m.store[key]; ok {
			products = append(products, product)
		}
		if int64(len(products)) == limit {
			break
		}
	}
	return products, nil
}

func (m *mockProductRepository) UpdateByID(ctx context.Context, id model.ProductID, fields bson.M) (*model.Product, error) {
	m.updateCalls++
	product, ok := m.store[id.String()]
	if !ok {
		return nil, model.ErrNotFound
	}
	if name, ok := fields["name"]; ok {
		product.Name = name.(string)
	}
	if description, ok := fields["description"]; ok {
		product.Description = description.(string)
	}
	if price, ok := fields["price"]; ok {
		product.Price = price.(float64)
	}
	m.store[id.String()] = product
	return &product, nil
}

func (m *mockProductRepository) DeleteByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	product, ok := m.store[id.String()]
	if !ok {
		return nil, model.ErrNotFound
	}
	delete(m.store, id.String())
	return &product, nil
}

func newPen() *model.ProductCreate {
	return &model.ProductCreate{Name: strp("Pen"), Description: strp("Blue ink"), Price: floatp(1.5)}
}

func TestProductService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateThenGetReturnsEqualRecord", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		created, err := svc.Create(ctx, newPen())
		require.NoError(t, err)
		require.False(t, created.ID.IsZero())

		got, err := svc.Get(ctx, created.ID.String())
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("CreateRejectsInvalidPayloadBeforeStore", func(t *testing.T) {
		repo := newMockRepo()
		svc := NewProductService(repo)

		_, err := svc.Create(ctx, &model.ProductCreate{Name: strp("Pen")})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Empty(t, repo.store)
	})

	t.Run("UpdateChangesOnlySuppliedFields", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		created, err := svc.Create(ctx, newPen())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID.String(), &model.ProductUpdate{Price: floatp(2.0)})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, "Pen", updated.Name)
		require.Equal(t, "Blue ink", updated.Description)
		require.Equal(t, 2.0, updated.Price)
	})

	t.Run("UpdateWithSuppliedZeroValuesOverwrites", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		created, err := svc.Create(ctx, newPen())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID.String(), &model.ProductUpdate{Description: strp(""), Price: floatp(0)})
		require.NoError(t, err)
		require.Equal(t, "Pen", updated.Name)
		require.Equal(t, "", updated.Description)
		require.Equal(t, 0.0, updated.Price)
	})

	t.Run("UpdateWithEmptyPayloadIsNoOp", func(t *testing.T) {
		repo := newMockRepo()
		svc := NewProductService(repo)

		created, err := svc.Create(ctx, newPen())
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID.String(), &model.ProductUpdate{})
		require.NoError(t, err)
		require.Equal(t, created, updated)
		require.Zero(t, repo.updateCalls)
	})

	t.Run("UpdateMissingRecordFails", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		_, err := svc.Update(ctx, model.NewProductID().String(), &model.ProductUpdate{Price: floatp(2.0)})
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("DeleteReturnsSnapshotThenGetFails", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		created, err := svc.Create(ctx, newPen())
		require.NoError(t, err)

		deleted, err := svc.Delete(ctx, created.ID.String())
		require.NoError(t, err)
		require.Equal(t, created, deleted)

		_, err = svc.Get(ctx, created.ID.String())
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = svc.Delete(ctx, created.ID.String())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("ListContainsExactlyExistingRecords", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		want := make(map[string]bool)
		for i := 0; i < 3; i++ {
			created, err := svc.Create(ctx, newPen())
			require.NoError(t, err)
			want[created.ID.String()] = true
		}

		products, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		seen := make(map[string]bool)
		for _, p := range products {
			require.False(t, seen[p.ID.String()], "duplicate id in list")
			seen[p.ID.String()] = true
			require.True(t, want[p.ID.String()])
		}
	})

	t.Run("ListWithNoRecordsIsEmptyNotNil", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		products, err := svc.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, products)
		require.Empty(t, products)
	})

	t.Run("MalformedIDFailsWithoutStoreCall", func(t *testing.T) {
		svc := NewProductService(newMockRepo())

		for _, op := range []func() error{
			func() error { _, err := svc.Get(ctx, "not-a-valid-id"); return err },
			func() error {
				_, err := svc.Update(ctx, "not-a-valid-id", &model.ProductUpdate{Price: floatp(1)})
				return err
			},
			func() error { _, err := svc.Delete(ctx, "not-a-valid-id"); return err },
		} {
			require.ErrorIs(t, op(), model.ErrMalformedID)
		}
	})
}
