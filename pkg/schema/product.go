package schema

import "github.com/hamba/avro/v2"

const ProductCreatedSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product_created",
	"fields" : [
		{"name": "product_id", "type": "string"},
		{"name": "collection", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "image_url", "type": "string"},
		{"name": "display_images", "type": {"type": "array", "items": "string"}},
		{"name": "category", "type": {"type": "array", "items": "string"}},
		{"name": "sizes", "type": {"type": "array", "items": "string"}},
		{"name": "description", "type": "string"},
		{"name": "shipping_and_return", "type": "string"},
		{"name": "care_guide", "type": "string"},
		{"name": "gender", "type": "string"},
		{"name": "created_at", "type": "long"}
	]
}`

// ProductCreatedV1 is the value of a product events record. CreatedAt is in
// unix milliseconds.
type ProductCreatedV1 struct {
	ProductID         string   `avro:"product_id"`
	Collection        string   `avro:"collection"`
	Name              string   `avro:"name"`
	Price             float64  `avro:"price"`
	ImageURL          string   `avro:"image_url"`
	DisplayImages     []string `avro:"display_images"`
	Category          []string `avro:"category"`
	Sizes             []string `avro:"sizes"`
	Description       string   `avro:"description"`
	ShippingAndReturn string   `avro:"shipping_and_return"`
	CareGuide         string   `avro:"care_guide"`
	Gender            string   `avro:"gender"`
	CreatedAt         int64    `avro:"created_at"`
}

func ProductCreatedV1Avro() avro.Schema {
	return avro.MustParse(ProductCreatedSchemaTextV1)
}
