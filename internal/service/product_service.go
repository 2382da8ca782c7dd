package service

import (
	"context"
	"time"

	"product-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
)

// storeTimeout bounds every store round trip; the driver default alone is
// not enough when the store stops answering.
const storeTimeout = 5 * time.Second

// listLimit caps List at a fixed page size.
const listLimit = 1000

// ProductRepository is the store abstraction the service talks to. All
// methods return model.ErrNotFound for an absent record and wrap driver
// failures in model.ErrStoreUnavailable.
type ProductRepository interface {
	Insert(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id model.ProductID) (*model.Product, error)
	FindAll(ctx context.Context, limit int64) ([]model.Product, error)
	UpdateByID(ctx context.Context, id model.ProductID, fields bson.M) (*model.Product, error)
	DeleteByID(ctx context.Context, id model.ProductID) (*model.Product, error)
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// Create validates the payload before any store call, persists the record
// and returns it as re-read from the store.
func (s *ProductService) Create(ctx context.Context, payload *model.ProductCreate) (*model.Product, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	product := payload.Product()
	return s.repo.Insert(ctx, &product)
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	productID, err := model.ParseProductID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.repo.FindByID(ctx, productID)
}

// Update merges the supplied fields into the stored record atomically and
// returns the post-update record. A payload with no fields supplied is a
// legal no-op that returns the current record unchanged.
func (s *ProductService) Update(ctx context.Context, id string, payload *model.ProductUpdate) (*model.Product, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	productID, err := model.ParseProductID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	fields := payload.Fields()
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, productID)
	}
	return s.repo.UpdateByID(ctx, productID, fields)
}

// Delete removes the record and returns its pre-delete snapshot.
func (s *ProductService) Delete(ctx context.Context, id string) (*model.Product, error) {
	productID, err := model.ParseProductID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.repo.DeleteByID(ctx, productID)
}

// List returns all records up to the fixed page bound, in store-native
// order. No records is an empty collection, not a failure.
func (s *ProductService) List(ctx context.Context) (model.ProductCollection, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	products, err := s.repo.FindAll(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	return model.ProductCollection(products), nil
}
