package main

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/23skdu/longbow-packvec/internal/cache"
	"github.com/23skdu/longbow-packvec/internal/client"
	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

// PackvecFlightServer stores packed buffers pushed with DoPut and serves
// them back with DoGet. The first descriptor path element names the
// dataset; records carrying a float vector column need the format as the
// second path element.
type PackvecFlightServer struct {
	flight.BaseFlightServer
	store   cache.BufferCache
	alloc   memory.Allocator
	builder *client.RecordBatchBuilder
}

func NewPackvecFlightServer(store cache.BufferCache) *PackvecFlightServer {
	alloc := memory.NewGoAllocator()
	return &PackvecFlightServer{
		store:   store,
		alloc:   alloc,
		builder: client.NewRecordBatchBuilder(alloc),
	}
}

func (s *PackvecFlightServer) DoExchange(stream flight.FlightService_DoExchangeServer) error {
	return status.Error(codes.Unimplemented, "DoExchange not implemented")
}

func (s *PackvecFlightServer) DoPut(stream flight.FlightService_DoPutServer) error {
	reader, err := flight.NewRecordReader(stream, ipc.WithAllocator(s.alloc))
	if err != nil {
		return err
	}
	defer reader.Release()

	path := reader.LatestFlightDescriptor().GetPath()
	if len(path) == 0 || path[0] == "" {
		return status.Error(codes.InvalidArgument, "DoPut needs a path descriptor naming the dataset")
	}
	key := path[0]

	var entry cache.Entry
	for reader.Next() {
		rec := reader.Record()
		format, data, err := s.packRecord(rec, path[1:])
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		if entry.Format != "" && entry.Format != format {
			return status.Errorf(codes.InvalidArgument, "dataset %s mixes formats %s and %s", key, entry.Format, format)
		}
		entry.Format = format
		entry.Data = append(entry.Data, data...)
		log.Debug().Str("dataset", key).Int64("rows", rec.NumRows()).Msg("DoPut received batch")
	}
	if err := reader.Err(); err != nil {
		return err
	}
	if entry.Format == "" {
		return status.Error(codes.InvalidArgument, "DoPut stream carried no records")
	}

	entry.Count = len(entry.Data) / packed.MustLookup(entry.Format).Size()
	s.store.Put(key, entry)
	log.Info().Str("dataset", key).Str("format", entry.Format).Int("count", entry.Count).Msg("Stored packed dataset")
	return nil
}

// packRecord returns the packed bytes of rec, packing a vector column
// with the format named in rest when the record is not packed already.
func (s *PackvecFlightServer) packRecord(rec arrow.RecordBatch, rest []string) (string, []byte, error) {
	if len(rec.Schema().FieldIndices(client.PackedColumn)) > 0 {
		return client.DecodePacked(rec)
	}
	if len(rest) == 0 {
		return "", nil, fmt.Errorf("record has no %s column and the descriptor names no format", client.PackedColumn)
	}
	c, err := packed.Lookup(rest[0])
	if err != nil {
		return "", nil, err
	}
	values, width, err := client.ReadVectors(rec)
	if err != nil {
		return "", nil, err
	}
	if len(values) > 0 && width != c.Components() {
		return "", nil, fmt.Errorf("%s: vectors have %d components, want %d: %w", c.Name(), width, c.Components(), packed.ErrInvalidLength)
	}
	data, err := vertexbuf.Pack(c, values)
	if err != nil {
		return "", nil, err
	}
	valuesPacked.WithLabelValues(c.Name()).Add(float64(len(values)))
	return c.Name(), data, nil
}

func (s *PackvecFlightServer) DoGet(tkt *flight.Ticket, stream flight.FlightService_DoGetServer) error {
	key := string(tkt.GetTicket())
	entry, ok := s.store.Get(key)
	if !ok {
		return status.Errorf(codes.NotFound, "dataset %q not found", key)
	}

	rec, err := s.builder.BuildPacked(entry.Format, entry.Data)
	if err != nil {
		return status.Error(codes.Internal, err.Error())
	}
	defer rec.Release()

	writer := flight.NewRecordWriter(stream, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(s.alloc))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (s *PackvecFlightServer) flightInfo(key string) (*flight.FlightInfo, bool) {
	entry, ok := s.store.Get(key)
	if !ok {
		return nil, false
	}
	c := packed.MustLookup(entry.Format)
	rec, err := s.builder.BuildPacked(entry.Format, nil)
	if err != nil {
		return nil, false
	}
	defer rec.Release()

	return &flight.FlightInfo{
		Schema:           flight.SerializeSchema(rec.Schema(), s.alloc),
		FlightDescriptor: &flight.FlightDescriptor{Type: flight.DescriptorPATH, Path: []string{key, c.Name()}},
		Endpoint: []*flight.FlightEndpoint{
			{Ticket: &flight.Ticket{Ticket: []byte(key)}},
		},
		TotalRecords: int64(entry.Count),
		TotalBytes:   int64(len(entry.Data)),
	}, true
}

func (s *PackvecFlightServer) ListFlights(_ *flight.Criteria, stream flight.FlightService_ListFlightsServer) error {
	for _, key := range s.store.Keys() {
		info, ok := s.flightInfo(key)
		if !ok {
			// Deleted since Keys was taken.
			continue
		}
		if err := stream.Send(info); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackvecFlightServer) GetFlightInfo(_ context.Context, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	if len(desc.GetPath()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "descriptor has no path")
	}
	info, ok := s.flightInfo(desc.GetPath()[0])
	if !ok {
		return nil, status.Errorf(codes.NotFound, "dataset %q not found", desc.GetPath()[0])
	}
	return info, nil
}

func StartFlightServer(addr string, store cache.BufferCache) {
	// Create the generic Flight Server which manages the GRPC lifecycle
	server := flight.NewFlightServer()

	server.RegisterFlightService(NewPackvecFlightServer(store))

	// Init handles the listener creation internally
	if err := server.Init(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to init Flight server")
	}

	log.Info().Str("addr", addr).Msg("Starting packvec Flight server")
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("Flight server failed")
	}
}
