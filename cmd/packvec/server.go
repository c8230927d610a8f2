package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/fxamacker/cbor/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/23skdu/longbow-packvec/internal/cache"
	"github.com/23skdu/longbow-packvec/internal/client"
	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/quant"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

var (
	valuesPacked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packvec_values_packed_total",
		Help: "The total number of float values packed",
	}, []string{"format"})

	valuesUnpacked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packvec_values_unpacked_total",
		Help: "The total number of float values unpacked",
	}, []string{"format"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packvec_request_duration_seconds",
		Help:    "Time spent processing conversion requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packvec_request_errors_total",
		Help: "Requests rejected or failed, by handler and status code",
	}, []string{"handler", "code"})

	// Cache size is registered in startServer to capture the store.
)

// FlightClientInterface is the part of client.FlightClient the server
// forwards packed records through.
type FlightClientInterface interface {
	DoPut(ctx context.Context, datasetName string, record arrow.RecordBatch) error
	Close() error
}

// PackResponse is the CBOR body of /pack.
type PackResponse struct {
	Format string `cbor:"format"`
	Count  int    `cbor:"count"`
	Data   []byte `cbor:"data"`
}

// FormatInfo describes one entry of /formats.
type FormatInfo struct {
	Name       string `cbor:"name"`
	Size       int    `cbor:"size"`
	Components int    `cbor:"components"`
}

type Server struct {
	store         cache.BufferCache
	flightClient  FlightClientInterface
	datasetName   string
	alloc         memory.Allocator
	builder       *client.RecordBatchBuilder
	sem           *semaphore.Weighted
	maxConcurrent int64
}

func NewServer(store cache.BufferCache, fc FlightClientInterface, dataset string, maxConcurrent int) *Server {
	alloc := memory.NewGoAllocator()
	return &Server{
		store:         store,
		flightClient:  fc,
		datasetName:   dataset,
		alloc:         alloc,
		builder:       client.NewRecordBatchBuilder(alloc),
		sem:           semaphore.NewWeighted(int64(maxConcurrent)),
		maxConcurrent: int64(maxConcurrent),
	}
}

// Handler returns the HTTP routes of the conversion service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/pack", s.handlePack)
	mux.HandleFunc("/pack/arrow", s.handlePackArrow)
	mux.HandleFunc("/unpack", s.handleUnpack)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/formats", s.handleFormats)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func startServer(addr string, store cache.BufferCache, fc FlightClientInterface, dataset string, maxConcurrent int) {
	srv := NewServer(store, fc, dataset, maxConcurrent)

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "packvec_cached_buffers",
			Help: "Number of packed buffers held for Flight DoGet",
		},
		func() float64 {
			return float64(store.Size())
		},
	))

	log.Info().Str("addr", addr).Msg("Starting packvec HTTP server")
	if fc != nil {
		log.Info().Str("dataset", dataset).Msg("Forwarding packed buffers to remote Flight server")
	}

	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

var tracer = otel.Tracer("packvec-server")

// httpError logs, records and reports a failed request.
func httpError(w http.ResponseWriter, span trace.Span, handler string, code int, err error) {
	span.RecordError(err)
	requestErrors.WithLabelValues(handler, fmt.Sprint(code)).Inc()
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("handler", handler).Msg("Request failed")
	} else {
		log.Debug().Err(err).Str("handler", handler).Msg("Request rejected")
	}
	http.Error(w, err.Error(), code)
}

// errorStatus maps conversion errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, packed.ErrUnknownFormat), errors.Is(err, packed.ErrInvalidLength),
		errors.Is(err, client.ErrMissingColumn):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// admit acquires admission for n values. Requests larger than the whole
// budget take all of it.
func (s *Server) admit(ctx context.Context, n int) (func(), error) {
	weight := min(int64(max(n, 1)), s.maxConcurrent)
	if err := s.sem.Acquire(ctx, weight); err != nil {
		return nil, err
	}
	return func() { s.sem.Release(weight) }, nil
}

// begin starts the span and timer shared by the conversion handlers and
// resolves the format query parameter.
func (s *Server) begin(w http.ResponseWriter, r *http.Request, handler string) (context.Context, trace.Span, packed.Codec, func(), bool) {
	ctx, span := tracer.Start(r.Context(), handler)
	start := time.Now()
	done := func() {
		requestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
		span.End()
	}

	if r.Method != http.MethodPost {
		httpError(w, span, handler, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return ctx, span, nil, done, false
	}

	c, err := packed.Lookup(r.URL.Query().Get("format"))
	if err != nil {
		httpError(w, span, handler, http.StatusBadRequest, err)
		return ctx, span, nil, done, false
	}
	span.SetAttributes(attribute.String("format", c.Name()))
	return ctx, span, c, done, true
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	const handler = "pack"
	ctx, span, c, done, ok := s.begin(w, r, handler)
	defer done()
	if !ok {
		return
	}

	var values []float32
	if err := cbor.NewDecoder(r.Body).Decode(&values); err != nil {
		httpError(w, span, handler, http.StatusBadRequest, fmt.Errorf("bad request (CBOR decode): %w", err))
		return
	}
	span.SetAttributes(attribute.Int("value_count", len(values)))

	// Admission Control
	release, err := s.admit(ctx, len(values))
	if err != nil {
		httpError(w, span, handler, http.StatusServiceUnavailable, fmt.Errorf("server busy: %w", err))
		return
	}
	buf, err := vertexbuf.Pack(c, values)
	release()
	if err != nil {
		httpError(w, span, handler, errorStatus(err), err)
		return
	}
	valuesPacked.WithLabelValues(c.Name()).Add(float64(len(values)))
	count := len(buf) / c.Size()

	if key := r.URL.Query().Get("store"); key != "" {
		s.store.Put(key, cache.Entry{Format: c.Name(), Count: count, Data: buf})
		log.Debug().Str("key", key).Int("count", count).Msg("Stored packed buffer")
	}

	if s.flightClient != nil {
		if err := s.forward(ctx, c, buf); err != nil {
			httpError(w, span, handler, http.StatusBadGateway, fmt.Errorf("forwarding to Flight server: %w", err))
			return
		}
	}

	w.Header().Set("Content-Type", "application/cbor")
	if err := cbor.NewEncoder(w).Encode(PackResponse{Format: c.Name(), Count: count, Data: buf}); err != nil {
		log.Error().Err(err).Msg("Failed to write pack response")
	}
}

func (s *Server) forward(ctx context.Context, c packed.Codec, buf []byte) error {
	rb, err := s.builder.BuildPacked(c.Name(), buf)
	if err != nil {
		return err
	}
	defer rb.Release()
	return s.flightClient.DoPut(ctx, s.datasetName, rb)
}

func (s *Server) handleUnpack(w http.ResponseWriter, r *http.Request) {
	const handler = "unpack"
	ctx, span, c, done, ok := s.begin(w, r, handler)
	defer done()
	if !ok {
		return
	}

	var buf []byte
	if err := cbor.NewDecoder(r.Body).Decode(&buf); err != nil {
		httpError(w, span, handler, http.StatusBadRequest, fmt.Errorf("bad request (CBOR decode): %w", err))
		return
	}

	release, err := s.admit(ctx, len(buf)/c.Size()*c.Components())
	if err != nil {
		httpError(w, span, handler, http.StatusServiceUnavailable, fmt.Errorf("server busy: %w", err))
		return
	}
	values, err := vertexbuf.Unpack(c, buf)
	release()
	if err != nil {
		httpError(w, span, handler, errorStatus(err), err)
		return
	}
	valuesUnpacked.WithLabelValues(c.Name()).Add(float64(len(values)))

	w.Header().Set("Content-Type", "application/cbor")
	if err := cbor.NewEncoder(w).Encode(values); err != nil {
		log.Error().Err(err).Msg("Failed to write unpack response")
	}
}

func (s *Server) handlePackArrow(w http.ResponseWriter, r *http.Request) {
	const handler = "pack_arrow"
	ctx, span, c, done, ok := s.begin(w, r, handler)
	defer done()
	if !ok {
		return
	}

	reader, err := ipc.NewReader(r.Body, ipc.WithAllocator(s.alloc))
	if err != nil {
		httpError(w, span, handler, http.StatusBadRequest, fmt.Errorf("failed to create IPC reader: %w", err))
		return
	}
	defer reader.Release()

	var out []arrow.RecordBatch
	defer func() {
		for _, rec := range out {
			rec.Release()
		}
	}()

	totalProcessed := 0
	for reader.Next() {
		values, width, err := client.ReadVectors(reader.Record())
		if err != nil {
			httpError(w, span, handler, errorStatus(err), err)
			return
		}
		if len(values) > 0 && width != c.Components() {
			err := fmt.Errorf("%s: vectors have %d components, want %d: %w", c.Name(), width, c.Components(), packed.ErrInvalidLength)
			httpError(w, span, handler, http.StatusBadRequest, err)
			return
		}

		release, err := s.admit(ctx, len(values))
		if err != nil {
			httpError(w, span, handler, http.StatusServiceUnavailable, fmt.Errorf("server busy: %w", err))
			return
		}
		buf, err := vertexbuf.Pack(c, values)
		release()
		if err != nil {
			httpError(w, span, handler, errorStatus(err), err)
			return
		}
		rb, err := s.builder.BuildPacked(c.Name(), buf)
		if err != nil {
			httpError(w, span, handler, http.StatusInternalServerError, err)
			return
		}
		out = append(out, rb)
		valuesPacked.WithLabelValues(c.Name()).Add(float64(len(values)))
		totalProcessed += len(values)
	}
	if err := reader.Err(); err != nil {
		httpError(w, span, handler, http.StatusBadRequest, fmt.Errorf("stream error: %w", err))
		return
	}
	span.SetAttributes(attribute.Int("value_count", totalProcessed))

	if len(out) == 0 {
		// An empty stream still gets the output schema.
		rb, err := s.builder.BuildPacked(c.Name(), nil)
		if err != nil {
			httpError(w, span, handler, http.StatusInternalServerError, err)
			return
		}
		out = append(out, rb)
	}

	w.Header().Set("Content-Type", "application/vnd.apache.arrow.stream")
	writer := ipc.NewWriter(w, ipc.WithSchema(out[0].Schema()), ipc.WithAllocator(s.alloc))
	for _, rec := range out {
		if err := writer.Write(rec); err != nil {
			log.Error().Err(err).Msg("Failed to write Arrow response")
			break
		}
	}
	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Arrow response")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	const handler = "report"
	ctx, span, c, done, ok := s.begin(w, r, handler)
	defer done()
	if !ok {
		return
	}

	var values []float32
	if err := cbor.NewDecoder(r.Body).Decode(&values); err != nil {
		httpError(w, span, handler, http.StatusBadRequest, fmt.Errorf("bad request (CBOR decode): %w", err))
		return
	}

	release, err := s.admit(ctx, len(values))
	if err != nil {
		httpError(w, span, handler, http.StatusServiceUnavailable, fmt.Errorf("server busy: %w", err))
		return
	}
	rep, err := quant.Measure(c, values)
	release()
	if err != nil {
		httpError(w, span, handler, errorStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/cbor")
	if err := cbor.NewEncoder(w).Encode(rep); err != nil {
		log.Error().Err(err).Msg("Failed to write report response")
	}
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	all := packed.Formats()
	infos := make([]FormatInfo, len(all))
	for i, c := range all {
		infos[i] = FormatInfo{Name: c.Name(), Size: c.Size(), Components: c.Components()}
	}
	w.Header().Set("Content-Type", "application/cbor")
	if err := cbor.NewEncoder(w).Encode(infos); err != nil {
		log.Error().Err(err).Msg("Failed to write formats response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
