package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Breaker defaults for NewFlightClient.
const (
	DefaultMaxFailures    = 5
	DefaultBreakerTimeout = 30 * time.Second
)

// FlightClient pushes and fetches packed records on a remote Flight
// server. Every call goes through a CircuitBreaker.
type FlightClient struct {
	client  flight.Client
	conn    *grpc.ClientConn
	breaker *CircuitBreaker
}

// NewFlightClient creates a new Flight client connected to the given address.
func NewFlightClient(addr string) (*FlightClient, error) {
	return NewFlightClientWithBreaker(addr, NewCircuitBreaker(DefaultMaxFailures, DefaultBreakerTimeout))
}

// NewFlightClientWithBreaker is NewFlightClient with a caller-supplied breaker.
func NewFlightClientWithBreaker(addr string, cb *CircuitBreaker) (*FlightClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	client := flight.NewClientFromConn(conn, nil)
	return &FlightClient{
		client:  client,
		conn:    conn,
		breaker: cb,
	}, nil
}

// Breaker exposes the client's circuit breaker.
func (c *FlightClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// DoPut sends a RecordBatch to the given dataset on the remote server.
func (c *FlightClient) DoPut(ctx context.Context, datasetName string, record arrow.RecordBatch) error {
	return c.breaker.Do(func() error {
		return c.doPut(ctx, datasetName, record)
	})
}

func (c *FlightClient) doPut(ctx context.Context, datasetName string, record arrow.RecordBatch) error {
	desc := &flight.FlightDescriptor{
		Type: flight.DescriptorPATH,
		Path: []string{datasetName},
	}

	stream, err := c.client.DoPut(ctx)
	if err != nil {
		return err
	}

	writer := flight.NewRecordWriter(stream)
	// The descriptor rides on the first message of the stream.
	writer.SetFlightDescriptor(desc)

	if err := writer.Write(record); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}
	// Drain the server's acknowledgements so errors surface here.
	for {
		if _, err := stream.Recv(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// DoGet fetches every record stored under datasetName. The caller must
// release the returned records.
func (c *FlightClient) DoGet(ctx context.Context, datasetName string) ([]arrow.RecordBatch, error) {
	var out []arrow.RecordBatch
	err := c.breaker.Do(func() error {
		stream, err := c.client.DoGet(ctx, &flight.Ticket{Ticket: []byte(datasetName)})
		if err != nil {
			return err
		}
		reader, err := flight.NewRecordReader(stream)
		if err != nil {
			return err
		}
		defer reader.Release()

		for reader.Next() {
			rec := reader.Record()
			rec.Retain()
			out = append(out, rec)
		}
		return reader.Err()
	})
	if err != nil {
		for _, rec := range out {
			rec.Release()
		}
		return nil, fmt.Errorf("DoGet %s: %w", datasetName, err)
	}
	return out, nil
}

// ListFlights returns the dataset names the remote server advertises.
func (c *FlightClient) ListFlights(ctx context.Context) ([]string, error) {
	var names []string
	err := c.breaker.Do(func() error {
		stream, err := c.client.ListFlights(ctx, &flight.Criteria{})
		if err != nil {
			return err
		}
		for {
			info, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if desc := info.GetFlightDescriptor(); desc != nil && len(desc.Path) > 0 {
				names = append(names, desc.Path[0])
			}
		}
	})
	return names, err
}

// Close closes the client connection.
func (c *FlightClient) Close() error {
	return c.conn.Close()
}
