package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
	"product": {
		"name": "Lizol Floor Cleaner",
		"storeProducts": [
			{
				"outOfStock": false,
				"sellingPrice": 19900,
				"productVariant": {"mrp": 24900}
			}
		]
	}
}`

func parse(t *testing.T) Doc {
	d, err := Parse([]byte(sample))
	require.NoError(t, err)
	return d
}

func TestGet_NestedPathWithIndex(t *testing.T) {
	d := parse(t)

	mrp, ok := d.Float("product", "storeProducts", 0, "productVariant", "mrp")
	assert.True(t, ok)
	assert.Equal(t, float64(24900), mrp)
}

func TestGet_MissingKey(t *testing.T) {
	d := parse(t)

	_, ok := d.Get("product", "brand")
	assert.False(t, ok)
}

func TestGet_IndexOutOfRange(t *testing.T) {
	d := parse(t)

	_, ok := d.Get("product", "storeProducts", 3, "outOfStock")
	assert.False(t, ok)
}

func TestGet_WrongTypeMidPath(t *testing.T) {
	d := parse(t)

	// "name" is a string, not an object
	_, ok := d.Get("product", "name", "nested")
	assert.False(t, ok)

	// indexing into an object
	_, ok = d.Get("product", 0)
	assert.False(t, ok)
}

func TestTypedAccessors(t *testing.T) {
	d := parse(t)

	name, ok := d.String("product", "name")
	assert.True(t, ok)
	assert.Equal(t, "Lizol Floor Cleaner", name)

	oos, ok := d.Bool("product", "storeProducts", 0, "outOfStock")
	assert.True(t, ok)
	assert.False(t, oos)

	// type mismatch yields ok=false, not a zero-value success
	_, ok = d.String("product", "storeProducts", 0, "sellingPrice")
	assert.False(t, ok)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"truncated":`))
	assert.Error(t, err)
}
