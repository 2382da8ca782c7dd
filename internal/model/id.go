package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductID wraps the store-native ObjectID. External callers only ever see
// the hex string form; the native form stays inside this package and the
// repository filters built from it.
type ProductID struct {
	oid primitive.ObjectID
}

func NewProductID() ProductID {
	return ProductID{oid: primitive.NewObjectID()}
}

// ParseProductID converts the external string form into a ProductID.
// Fails with ErrMalformedID when the string is not a valid ObjectID hex.
func ParseProductID(s string) (ProductID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ProductID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return ProductID{oid: oid}, nil
}

func (id ProductID) String() string {
	return id.oid.Hex()
}

func (id ProductID) IsZero() bool {
	return id.oid.IsZero()
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.oid.Hex())
}

func (id *ProductID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseProductID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ProductID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.oid)
}

func (id *ProductID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	return raw.Unmarshal(&id.oid)
}
