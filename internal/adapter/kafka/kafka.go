package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
	tls     *tls.Config
}

// ProducerTLSOpt enables TLS for the client created by [ProducerClientOpt].
// It must precede that option.
func ProducerTLSOpt(cfg *tls.Config) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.tls = cfg
		return nil
	}
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if opts.tls != nil {
			kopts = append(kopts, kgo.DialTLSConfig(opts.tls))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerCustomClientOpt sets an already configured client.
func ProducerCustomClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productCreatedToSchemaV1(v domain.ProductCreated) (s schema.ProductCreatedV1) {
	s.ProductID = v.Product.ID
	s.Collection = v.Collection
	s.Name = v.Product.Name
	s.Price = v.Product.Price
	s.ImageURL = v.Product.ImageURL
	s.DisplayImages = v.Product.DisplayImages
	s.Category = v.Product.Category
	s.Sizes = v.Product.Sizes
	s.Description = v.Product.Description
	s.ShippingAndReturn = v.Product.ShippingAndReturn
	s.CareGuide = v.Product.CareGuide
	s.Gender = v.Product.Gender
	s.CreatedAt = v.CreatedAt.UnixMilli()
	return
}
