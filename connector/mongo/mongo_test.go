package mongo

import (
	"testing"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWhereFilterTranslatesEqualsAndConnectives(t *testing.T) {
	w := &decode.Where{
		Fields: map[string]decode.FieldFilter{
			"name": {Filters: map[string]value.Value{"equals": value.Of.String("ada")}},
		},
		And: []*decode.Where{
			{Fields: map[string]decode.FieldFilter{
				"age": {Filters: map[string]value.Value{"equals": value.Of.Int(value.I64, 30)}},
			}},
		},
	}

	filter := whereFilter(w)
	assert.Equal(t, "ada", filter["name"])
	and, ok := filter["$and"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, and, 1)
}

func TestWhereFilterNilIsEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, whereFilter(nil))
}

func TestSortDocHonorsDirection(t *testing.T) {
	finder := &decode.Decoded{
		OrderBy: []decode.OrderByEntry{
			{Field: "createdAt", Sort: schema.Desc},
			{Field: "name", Sort: schema.Asc},
		},
	}
	doc := sortDoc(finder)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "name", Value: 1}}, doc)
}
