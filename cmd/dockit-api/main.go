// @title         Dockit API
// @version       0.1.0
// @description   Quote drafting and free-text work interpretation

package main

import (
	"context"

	"dockit/internal/core/catalog"
	"dockit/internal/platform/config"
	"dockit/internal/platform/logger"
	phttp "dockit/internal/platform/net/http"

	"dockit/internal/services/api"
	"dockit/internal/services/atl"
	"dockit/internal/services/curation"
	"dockit/internal/services/pricing"
)

func main() {
	// service-scoped config for HTTP etc (DOCKIT_API_*)
	root := config.New()
	apiCfg := root.Prefix("DOCKIT_API_")
	dataCfg := root.Prefix("DOCKIT_DATA_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// task mappings: embedded defaults plus an optional overlay directory
	var (
		cat *catalog.Catalog
		err error
	)
	if dir := dataCfg.MayString("MAPPINGS_DIR", ""); dir != "" {
		cat, err = catalog.LoadDir(dir)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		l.Panic().Err(err).Msg("loading task mappings failed")
	}

	// labor time table: embedded default or an external CSV
	var times *atl.Index
	if path := dataCfg.MayString("ATL_FILE", ""); path != "" {
		times, err = atl.LoadFile(path)
	} else {
		times, err = atl.Load()
	}
	if err != nil {
		l.Panic().Err(err).Msg("loading labor time table failed")
	}

	// curation sink and price data share the same data directory
	dataDir := dataCfg.MayString("DIR", "")
	sink := curation.NewSink(dataDir)
	prices := pricing.New(dataDir, sink)

	l.Info().
		Int("tasks", cat.Len()).
		Int("atl_moments", times.Moments()).
		Str("data_dir", dataDir).
		Msg("dockit api starting")

	// http server (reads DOCKIT_API_PORT / DOCKIT_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Logger:        l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
			Catalog:       cat,
			ATL:           times,
			Pricing:       prices,
			Curation:      sink,
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
