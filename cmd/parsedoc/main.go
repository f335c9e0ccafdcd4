package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/common"
	"github.com/mlaurent/restodoc/internal/entity"
	"github.com/mlaurent/restodoc/internal/ingest"
	"github.com/mlaurent/restodoc/internal/output"
	"github.com/mlaurent/restodoc/internal/pipeline"
)

// parsedoc structures a single OCR dump and prints the serialized result,
// no database involved. Useful for eyeballing extraction quality on one
// document.
func main() {
	var (
		file    = flag.String("file", "", "path to the OCR text dump (required)")
		docType = flag.String("type", "", "document type override: z_report, supplier_invoice, price_sheet")
		docID   = flag.String("id", "", "document ID to stamp into the result (default random)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	v := common.NewValidator().Field("file", *file, common.Required)
	if *docID != "" {
		v.Field("id", *docID, common.UUID)
	}
	if err := v.Error(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: parsedoc --file <ocr-dump> [--type z_report|supplier_invoice|price_sheet] [--id <uuid>]")
		os.Exit(2)
	}

	var doc entity.Document
	if *docType != "" {
		dt, ok := constants.ParseDocumentType(*docType)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown document type %q\n", *docType)
			os.Exit(2)
		}
		raw, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
			os.Exit(1)
		}
		doc = entity.Document{
			ID:         uuid.New(),
			SourcePath: *file,
			DocType:    dt,
			Text:       string(raw),
			IngestedAt: time.Now().UTC(),
		}
	} else {
		var err error
		doc, err = ingest.LoadDocument(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v (use --type to override the filename convention)\n", err)
			os.Exit(1)
		}
	}

	if *docID != "" {
		doc.ID = uuid.MustParse(*docID)
	}

	proc := pipeline.NewProcessor(logger, common.LoadConfig().Pipeline)
	result, err := proc.Process(context.Background(), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}

	serialized, err := output.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "serialize: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(serialized))
}
