package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrMissingOpt = errors.New("missing required option")

type Opt func(*serdeConfig) error

type serdeConfig struct {
	subject    string
	identifier SchemaIdentifier
}

func (c serdeConfig) check() error {
	var missing []string
	if c.subject == "" {
		missing = append(missing, "subject")
	}
	if c.identifier == nil {
		missing = append(missing, "schema identifier")
	}
	if len(missing) != 0 {
		return fmt.Errorf("%w: %s", ErrMissingOpt, strings.Join(missing, ", "))
	}
	return nil
}

func SubjectOpt(subject string) Opt {
	return func(c *serdeConfig) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		c.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(c *serdeConfig) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		c.identifier = si
		return nil
	}
}

// A ProductCreatedSerde encodes [ProductCreatedV1] values in the schema
// registry wire format: the registry header followed by the Avro body.
type ProductCreatedSerde struct {
	id    int
	serde *sr.Serde
}

// NewSerdeProductCreatedV1 registers the schema under the subject and
// returns its encoder. [SubjectOpt] and [SchemaIdentifierOpt] are required.
func NewSerdeProductCreatedV1(
	ctx context.Context, opts ...Opt,
) (*ProductCreatedSerde, error) {
	const op = "schema.NewSerdeProductCreatedV1"

	var cfg serdeConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := cfg.identifier.DetermineID(
		ctx, cfg.subject, ProductCreatedSchemaTextV1,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	avroSchema := ProductCreatedV1Avro()
	serde := new(sr.Serde)
	serde.Register(id, ProductCreatedV1{},
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(avroSchema, v)
		}),
	)
	return &ProductCreatedSerde{id: id, serde: serde}, nil
}

// Encode fails with [sr.ErrNotRegistered] unless v is a [ProductCreatedV1].
func (s *ProductCreatedSerde) Encode(v any) ([]byte, error) {
	return s.serde.Encode(v)
}

func (s *ProductCreatedSerde) SchemaID() int {
	return s.id
}
