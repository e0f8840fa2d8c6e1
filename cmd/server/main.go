package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/config"
	"billscan/internal/extract"
	"billscan/internal/handler"
	"billscan/internal/router"
	"billscan/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := extract.New(engineOptions(cfg.Extractor))
	svc := service.NewExtractionService(engine, cfg.Extractor.MaxBatch)

	h := router.Handlers{
		Extract: handler.NewExtractHandler(svc),
		Export:  handler.NewExportHandler(svc),
		Health:  handler.NewHealthHandler(engine),
	}
	r := router.Setup(cfg, h)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Extraction engine ready (vendor prefix %s, %d catalog items)", engine.Prefix(), len(cfg.Extractor.Catalog))
	if cfg.Auth.Secret == "" {
		log.Printf("Auth disabled: BILLSCAN_AUTH_SECRET not set")
	}
	log.Printf("Server starting on %s", cfg.Server.Port)
	return srv.ListenAndServe()
}

// engineOptions maps extractor configuration onto engine options.
func engineOptions(ec config.ExtractorConfig) extract.Options {
	catalog := make([]extract.CatalogItem, 0, len(ec.Catalog))
	for _, entry := range ec.Catalog {
		catalog = append(catalog, extract.CatalogItem{Name: entry.Name, TaxPct: entry.TaxPct})
	}
	taxPct := ec.DefaultTaxPct
	return extract.Options{
		VendorPrefix:      ec.VendorPrefix,
		DefaultTaxPct:     &taxPct,
		GenericItemCap:    ec.GenericItemCap,
		Catalog:           catalog,
		AddressBoundaries: ec.AddressBoundaries,
		NotesBoundaries:   ec.NotesBoundaries,
		TrailingArtifacts: ec.TrailingArtifacts,
		Weights: &extract.ScoreWeights{
			LetterAndDigit:  ec.Weights.LetterDigit,
			Separator:       ec.Weights.Separator,
			PreferredLength: ec.Weights.PreferredLength,
			Overlong:        ec.Weights.Overlong,
			LetterStart:     ec.Weights.LetterStart,
		},
	}
}
