package schema_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

const subject = "product-events-value"

func newSerde(t *testing.T, schemaID int) *schema.ProductCreatedSerde {
	t.Helper()
	si := new(MockSchemaIdentifier)
	si.On("DetermineID", t.Context(), subject, schema.ProductCreatedSchemaTextV1).
		Return(schemaID, nil)

	s, err := schema.NewSerdeProductCreatedV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(si),
	)
	require.NoError(t, err)
	return s
}

func TestSerdeProductCreatedV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeProductCreatedV1(t.Context())
		assert.ErrorIs(t, err, schema.ErrMissingOpt)
		assert.ErrorContains(t, err, "subject, schema identifier")
	})

	t.Run("MissingSubject", func(t *testing.T) {
		_, err := schema.NewSerdeProductCreatedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrMissingOpt)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeProductCreatedV1(
			t.Context(), schema.SubjectOpt(""),
		)
		require.Error(t, err)
		assert.NotErrorIs(t, err, schema.ErrMissingOpt)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		srErr := errors.New("registry unavailable")
		si.On("DetermineID", t.Context(), subject, schema.ProductCreatedSchemaTextV1).
			Return(0, srErr)

		_, err := schema.NewSerdeProductCreatedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorIs(t, err, srErr)
	})

	t.Run("WireFormat", func(t *testing.T) {
		s := newSerde(t, 7)
		assert.Equal(t, 7, s.SchemaID())

		v1 := schema.ProductCreatedV1{
			ProductID:         "65f0c0ffee0000000000beef",
			Collection:        "products",
			Name:              "Tee",
			Price:             500,
			ImageURL:          "x",
			DisplayImages:     []string{"x", "y"},
			Category:          []string{"shirts"},
			Sizes:             []string{"M", "L"},
			Description:       "d",
			ShippingAndReturn: "r",
			CareGuide:         "c",
			Gender:            "unisex",
			CreatedAt:         1700000000123,
		}

		data, err := s.Encode(v1)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)

		assert.Equal(t, byte(0), data[0])
		assert.Equal(t, uint32(7), binary.BigEndian.Uint32(data[1:5]))

		var v2 schema.ProductCreatedV1
		require.NoError(t, avro.Unmarshal(schema.ProductCreatedV1Avro(), data[5:], &v2))
		assert.Equal(t, v1, v2)
	})

	t.Run("UnregisteredType", func(t *testing.T) {
		s := newSerde(t, 1)

		_, err := s.Encode(struct{ Name string }{"Tee"})
		assert.Error(t, err)
	})
}
