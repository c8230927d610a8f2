package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/23skdu/longbow-packvec/internal/cache"
	"github.com/23skdu/longbow-packvec/internal/client"
	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/quant"
	"github.com/23skdu/longbow-packvec/internal/simd"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

var (
	formatName    = flag.String("format", "half4", "Packed format (see -formats)")
	inPath        = flag.String("in", "", "Input file: raw little-endian float32, or a packed buffer with -unpack")
	outPath       = flag.String("out", "", "Output file (default: stdout)")
	unpack        = flag.Bool("unpack", false, "Decode a packed buffer back to float32")
	report        = flag.Bool("report", false, "Log quantization error statistics for the input")
	saturate      = flag.Bool("saturate", false, "Clamp input values to [0, 1] before packing")
	listFormats   = flag.Bool("formats", false, "List the supported formats and exit")
	arrowOut      = flag.Bool("arrow", false, "Write packed output as an Arrow IPC stream")
	synthetic     = flag.Int("synthetic", 0, "Pack N generated vectors instead of reading -in")
	duration      = flag.Duration("duration", 0, "Run soak test for specified duration (e.g. 10s, 20m)")
	cpuProfile    = flag.String("cpuprofile", "", "Write cpu profile to file")
	serverAddr    = flag.String("server", "", "Remote Flight server address (e.g., localhost:3000)")
	datasetName   = flag.String("dataset", "packvec_dataset", "Target dataset name on server")
	listenAddr    = flag.String("listen", "", "Address to listen on for HTTP Server (e.g. :8080)")
	flightAddr    = flag.String("flight", "", "Address to listen on for Flight Server (e.g. :9090)")
	maxConcurrent = flag.Int("max-concurrent", 1<<20, "Maximum number of values converted concurrently by the servers")
	enableOTel    = flag.Bool("otel", false, "Enable OpenTelemetry tracing (stdout)")
	logLevel      = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	// Initialize logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if *listFormats {
		for _, c := range packed.Formats() {
			fmt.Printf("%-10s %d bytes, %d components\n", c.Name(), c.Size(), c.Components())
		}
		return
	}

	if *enableOTel {
		shutdown, err := initTracer()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer shutdown(context.Background())
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create CPU profile file")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("Could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	// Server Mode
	if *listenAddr != "" || *flightAddr != "" {
		runServers()
		return
	}

	if *inPath == "" && *synthetic <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	codec, err := packed.Lookup(*formatName)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown format")
	}

	ctx := context.Background()
	if *duration > 0 {
		if err := runSoak(ctx, codec); err != nil {
			log.Fatal().Err(err).Msg("Soak test failed")
		}
		return
	}
	if *unpack {
		if *inPath == "" {
			log.Fatal().Msg("-unpack needs -in")
		}
		if err := runUnpack(ctx, codec); err != nil {
			log.Fatal().Err(err).Msg("Unpack failed")
		}
		return
	}
	if err := runPack(ctx, codec); err != nil {
		log.Fatal().Err(err).Msg("Pack failed")
	}
}

func runServers() {
	store := cache.NewMapCache()

	var fcInterface FlightClientInterface
	if *serverAddr != "" {
		fc, err := client.NewFlightClient(*serverAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create flight client")
		}
		log.Info().Str("addr", *serverAddr).Msg("Connected to Flight Server")
		fcInterface = fc
	}

	if *listenAddr != "" {
		go startServer(*listenAddr, store, fcInterface, *datasetName, *maxConcurrent)
	}
	if *flightAddr != "" {
		StartFlightServer(*flightAddr, store)
		return
	}
	select {}
}

func runPack(ctx context.Context, codec packed.Codec) error {
	ctx, span := otel.Tracer("packvec-cli").Start(ctx, "pack")
	defer span.End()

	values, err := loadInput(codec)
	if err != nil {
		return err
	}
	if *saturate {
		simd.Saturate(values)
	}

	start := time.Now()
	buf, err := vertexbuf.PackParallel(ctx, codec, values, runtime.NumCPU())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	count := len(buf) / codec.Size()
	span.SetAttributes(
		attribute.String("format", codec.Name()),
		attribute.Int("count", count),
	)

	log.Info().
		Str("format", codec.Name()).
		Int("count", count).
		Int("in_bytes", len(values)*4).
		Int("out_bytes", len(buf)).
		Dur("elapsed", elapsed).
		Msg("Packed vectors")

	if *report {
		rep, err := quant.Measure(codec, values)
		if err != nil {
			return err
		}
		logReport(rep)
	}

	// If server is provided, send via Flight
	if *serverAddr != "" {
		return pushPacked(ctx, codec, buf)
	}

	if *arrowOut {
		return writeArrowOutput(codec, buf)
	}
	if *outPath == "" {
		_, err = os.Stdout.Write(buf)
		return err
	}
	return vertexbuf.WriteFile(*outPath, buf)
}

func loadInput(codec packed.Codec) ([]float32, error) {
	if *inPath == "" {
		return generateVectors(*synthetic, codec.Components()), nil
	}
	return vertexbuf.LoadFile(*inPath)
}

// generateVectors returns n deterministic vectors spread over [-1, 1].
func generateVectors(n, components int) []float32 {
	out := make([]float32, n*components)
	for i := range out {
		out[i] = float32(math.Sin(float64(i) * 0.37))
	}
	return out
}

func runSoak(ctx context.Context, codec packed.Codec) error {
	values, err := loadInput(codec)
	if err != nil {
		return err
	}
	log.Info().Str("duration", duration.String()).Str("format", codec.Name()).Msg("Starting soak test")

	workers := runtime.NumCPU()
	startTime := time.Now()
	endTime := startTime.Add(*duration)
	var totalValues int64
	var iter int

	for time.Now().Before(endTime) {
		if _, err := vertexbuf.PackParallel(ctx, codec, values, workers); err != nil {
			return err
		}
		totalValues += int64(len(values))
		iter++

		if iter%10 == 0 {
			elapsed := time.Since(startTime)
			log.Info().
				Str("elapsed", elapsed.Round(time.Second).String()).
				Int("iter", iter).
				Int64("total_values", totalValues).
				Float64("values_per_sec", float64(totalValues)/elapsed.Seconds()).
				Msg("Soak test progress")
		}
	}

	totalElapsed := time.Since(startTime)
	log.Info().
		Int64("total_values", totalValues).
		Dur("total_time", totalElapsed).
		Float64("avg_values_per_sec", float64(totalValues)/totalElapsed.Seconds()).
		Msg("Soak test complete")
	return nil
}

func runUnpack(ctx context.Context, codec packed.Codec) error {
	_, span := otel.Tracer("packvec-cli").Start(ctx, "unpack")
	defer span.End()

	buf, err := vertexbuf.LoadPackedFile(*inPath)
	if err != nil {
		return err
	}
	values, err := vertexbuf.Unpack(codec, buf)
	if err != nil {
		return err
	}
	log.Info().
		Str("format", codec.Name()).
		Int("count", len(buf)/codec.Size()).
		Int("values", len(values)).
		Msg("Unpacked vectors")

	if *outPath == "" {
		return vertexbuf.WriteFloat32s(os.Stdout, values)
	}
	return vertexbuf.WriteFloat32File(*outPath, values)
}

func pushPacked(ctx context.Context, codec packed.Codec, buf []byte) error {
	rec, err := client.NewRecordBatchBuilder(memory.NewGoAllocator()).BuildPacked(codec.Name(), buf)
	if err != nil {
		return err
	}
	defer rec.Release()

	log.Info().Int64("count", rec.NumRows()).Str("server", *serverAddr).Str("dataset", *datasetName).Msg("Sending packed buffer")
	flightClient, err := client.NewFlightClient(*serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", *serverAddr, err)
	}
	defer func() {
		if err := flightClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close flight client")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if err := flightClient.DoPut(ctx, *datasetName, rec); err != nil {
		return fmt.Errorf("flight DoPut failed: %w", err)
	}
	log.Info().Msg("Successfully sent packed buffer")
	return nil
}

func writeArrowOutput(codec packed.Codec, buf []byte) error {
	rec, err := client.NewRecordBatchBuilder(memory.NewGoAllocator()).BuildPacked(codec.Name(), buf)
	if err != nil {
		return err
	}
	defer rec.Release()

	w := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeArrowStream(w, rec)
}

func writeArrowStream(w *os.File, rec arrow.RecordBatch) error {
	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func logReport(rep quant.Report) {
	log.Info().
		Str("format", rep.Format).
		Int("count", rep.Count).
		Int("nans", rep.NaNs).
		Float64("input_max_abs", rep.InputMax).
		Float64("max_error", rep.MaxErr).
		Float64("mean_error", rep.MeanErr).
		Float64("std_dev", rep.StdDev).
		Float64("rms", rep.RMS).
		Floats64("lane_max_error", rep.PerLane).
		Msg("Quantization report")
}

func initTracer() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("packvec"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}
