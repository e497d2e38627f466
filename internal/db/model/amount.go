package model

import (
	"fmt"
	"math/big"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote is a uint64 quote amount stored as Decimal128. BSON integers are signed
// 64-bit, so amounts above MaxInt64 would not encode as int64.
type Quote uint64

func (q Quote) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(strconv.FormatUint(uint64(q), 10))
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

func (q *Quote) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		d, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("malformed decimal128 quote amount")
		}
		v, exp, err := d.BigInt()
		if err != nil {
			return err
		}
		if exp < 0 {
			return fmt.Errorf("quote amount %s is not an integer", d)
		}
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		if v.Sign() < 0 || !v.IsUint64() {
			return fmt.Errorf("quote amount %s is out of range", d)
		}
		*q = Quote(v.Uint64())
	case bsontype.Int64, bsontype.Int32:
		v, ok := raw.AsInt64OK()
		if !ok || v < 0 {
			return fmt.Errorf("quote amount %s is out of range", raw)
		}
		*q = Quote(v)
	default:
		return fmt.Errorf("cannot decode %s into a quote amount", t)
	}
	return nil
}
