package model

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validator.New()

// Product is the persisted record. The id is assigned by the store exactly
// once, at creation, and never changed by an update.
type Product struct {
	ID          ProductID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
}

// ProductCreate is the creation payload. Pointer fields distinguish a field
// that is absent from one set to its zero value, so "description": "" is a
// valid supplied value while a missing description is not.
type ProductCreate struct {
	Name        *string  `json:"name" validate:"required,min=1"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

func (c *ProductCreate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Product builds the record to persist. Call only after Validate.
func (c *ProductCreate) Product() Product {
	return Product{
		Name:        *c.Name,
		Description: *c.Description,
		Price:       *c.Price,
	}
}

// ProductUpdate is the partial-update payload. Every field is optional; nil
// means "leave the stored value untouched".
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (u *ProductUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Fields returns only the supplied fields, keyed by their stored names.
// The id is not part of the update shape, so it can never be overwritten.
func (u *ProductUpdate) Fields() bson.M {
	fields := bson.M{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	return fields
}

// ProductCollection is the list-response envelope.
type ProductCollection []Product
