package value

import (
	"math/big"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScalarRoundTrip(t *testing.T) {
	str := Of.String("hello")
	enc, err := ToJSON(str)
	assert.NoError(t, err)
	assert.Equal(t, "hello", enc)

	dec := Of.Decimal(decimal.RequireFromString("12.50"))
	enc, err = ToJSON(dec)
	assert.NoError(t, err)
	assert.Equal(t, "12.5", enc)

	d := Of.Date(civil.Date{Year: 2024, Month: 1, Day: 2})
	enc, err = ToJSON(d)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-02", enc)

	dt := Of.DateTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	enc, err = ToJSON(dt)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", enc)

	oid := primitive.NewObjectID()
	idVal := Of.ObjectID(oid)
	enc, err = ToJSON(idVal)
	assert.NoError(t, err)
	assert.Equal(t, oid.Hex(), enc)
}

func TestBigIntRoundTrip(t *testing.T) {
	b := big.NewInt(170141183460469231)
	v := Of.BigInt(I128, b)
	enc, err := ToJSON(v)
	assert.NoError(t, err)
	assert.Equal(t, b.String(), enc)
}

func TestHashSetDedupe(t *testing.T) {
	s := Of.HashSet([]Value{Of.String("a"), Of.String("a"), Of.String("b")})
	assert.Len(t, s.List(), 2)
}

func TestBTreeSetSorted(t *testing.T) {
	s := Of.BTreeSet([]Value{Of.String("b"), Of.String("a"), Of.String("a")})
	list := s.List()
	assert.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Str())
	assert.Equal(t, "b", list[1].Str())
}

func TestBTreeMapSortedKeys(t *testing.T) {
	m := Of.BTreeMap(map[string]Value{
		"z": Of.Int(I64, 1),
		"a": Of.Int(I64, 2),
	})
	assert.Equal(t, []string{"a", "z"}, m.Keys())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Of.Int(I64, 1), Of.Int(I64, 1)))
	assert.False(t, Equal(Of.Int(I64, 1), Of.Int(I64, 2)))
	assert.False(t, Equal(Of.Int(I64, 1), Of.String("1")))
}
