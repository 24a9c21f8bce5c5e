package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ProductEventsProducer = (*ProductEventsProducer)(nil)

// A ProductEventsProducer used for produce [domain.ProductCreated]
type ProductEventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

// NewProductEventsProducer requires a client option and
// [ProducerEncoderOpt].
func NewProductEventsProducer(
	opts ...ProducerOpt,
) (ProductEventsProducer, error) {
	const op = "NewProductEventsProducer"

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductEventsProducer{}, opErr(err, op)
		}
	}

	if options.cl == nil || options.encoder == nil {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	return ProductEventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "ProductEventsProducer",
	}, nil
}

func (p ProductEventsProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ProductEventsProducer) ProduceProductCreated(
	ctx context.Context, evt domain.ProductCreated,
) error {
	const op = "ProduceProductCreated"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p ProductEventsProducer) createRecord(
	evt domain.ProductCreated,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := productCreatedToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.ProductID), Value: b}, nil
}
