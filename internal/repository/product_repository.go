package repository

import (
	"context"
	"errors"
	"fmt"

	"product-api/internal/logger"
	"product-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

type ProductRepository struct {
	collection *mongo.Collection
}

var ProductRepositoryTracer = otel.Tracer("ProductRepository")

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// Insert persists a new record under a freshly assigned id, then re-reads it
// so the returned record reflects whatever the store actually wrote.
func (r *ProductRepository) Insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	product.ID = model.NewProductID()
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, storeError(err)
	}
	return r.findOne(ctx, product.ID)
}

func (r *ProductRepository) FindByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.findOne(ctx, id)
}

// FindAll returns up to limit records in store-native order. An empty
// collection decodes to an empty slice, never nil.
func (r *ProductRepository) FindAll(ctx context.Context, limit int64) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, storeError(err)
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError(err)
	}
	return products, nil
}

// UpdateByID applies the supplied fields in a single find-and-modify round
// trip and returns the post-update document. fields must be non-empty; the
// store rejects an empty $set.
func (r *ProductRepository) UpdateByID(ctx context.Context, id model.ProductID, fields bson.M) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.UpdateByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &product, nil
}

// DeleteByID removes the record in a single find-and-delete round trip and
// returns its last known values.
func (r *ProductRepository) DeleteByID(ctx context.Context, id model.ProductID) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var product model.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &product, nil
}

func (r *ProductRepository) findOne(ctx context.Context, id model.ProductID) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &product, nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
