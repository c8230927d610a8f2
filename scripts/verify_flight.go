//go:build ignore

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/23skdu/longbow-packvec/internal/client"
	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	addr := "localhost:9090"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	log.Info().Str("addr", addr).Msg("Connecting to packvec Flight server")

	c, err := client.NewFlightClient(addr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}
	defer c.Close()

	codec := packed.MustLookup("ubyten4")
	values := []float32{
		1, 0.5, 0, 1,
		0.25, 0.75, 1, 0,
		0, 0, 0, 1,
	}
	buf, err := vertexbuf.Pack(codec, values)
	if err != nil {
		log.Fatal().Err(err).Msg("Pack failed")
	}
	rec, err := client.NewRecordBatchBuilder(memory.NewGoAllocator()).BuildPacked(codec.Name(), buf)
	if err != nil {
		log.Fatal().Err(err).Msg("Build failed")
	}
	defer rec.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Retry loop while the server comes up
	for i := 0; i < 10; i++ {
		err = c.DoPut(ctx, "verify", rec)
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("DoPut failed, retrying...")
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to push after retries")
	}

	start := time.Now()
	recs, err := c.DoGet(ctx, "verify")
	if err != nil {
		log.Fatal().Err(err).Msg("DoGet failed")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("records", len(recs)).Msg("Received packed records")

	if len(recs) != 1 {
		log.Fatal().Int("expected", 1).Int("got", len(recs)).Msg("Record count mismatch")
	}
	defer recs[0].Release()

	format, got, err := client.DecodePacked(recs[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Decode failed")
	}
	if format != codec.Name() || !bytes.Equal(got, buf) {
		log.Fatal().Str("format", format).Int("bytes", len(got)).Msg("Round trip mismatch")
	}

	fmt.Println("VERIFICATION PASSED")
}
