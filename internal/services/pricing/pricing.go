// Package pricing resolves material unit prices with a three-tier priority:
// the customer's favorite article picks the article number, the customer
// price list supplies a net price, and the merged wholesale catalogs are
// the fallback. A price that resolves nowhere is zero, reported to the
// curation sink, and never an error
package pricing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"dockit/internal/platform/logger"
)

// EventSink receives missing-price and missing-mapping events
type EventSink interface {
	MissingPrice(customerKey, articleRef, articleNumber string)
	MissingMaterialMapping(materialRef string)
}

// Resolver holds the loaded price data, read-only after New.
// Customer price lists load lazily and are cached per customer
type Resolver struct {
	dataDir   string
	catalog   map[string]float64           // article number -> wholesale price
	refMap    map[string]string            // material ref -> article number
	favorites map[string]map[string]string // customer key -> ref -> article number

	mu        sync.RWMutex
	custCache map[string]map[string]float64

	sink EventSink
	log  *logger.Logger
}

// New builds a resolver over the data directory layout:
//
//	<dataDir>/catalogs/price_catalog.json
//	<dataDir>/catalogs/price_catalog_*.json
//	<dataDir>/catalogs/material_ref_map.json
//	<dataDir>/customers/favorites.json
//	<dataDir>/customers/<key>/price_list.json
//
// Missing files leave their tier empty; New never fails
func New(dataDir string, sink EventSink) *Resolver {
	r := &Resolver{
		dataDir:   dataDir,
		catalog:   map[string]float64{},
		refMap:    map[string]string{},
		favorites: map[string]map[string]string{},
		custCache: map[string]map[string]float64{},
		sink:      sink,
		log:       logger.Named("pricing"),
	}
	if dataDir == "" {
		return r
	}
	r.loadCatalogs()
	r.loadRefMap()
	r.loadFavorites()
	return r
}

// Price resolves the unit price for a material or article reference
func (r *Resolver) Price(customerKey, articleRef string) float64 {
	if articleRef == "" {
		return 0.0
	}

	articleNumber := r.resolveArticleNumber(customerKey, articleRef)

	if prices := r.customerPrices(customerKey); prices != nil {
		if p, ok := prices[articleNumber]; ok {
			return p
		}
	}

	if p, ok := r.catalog[articleNumber]; ok {
		return p
	}

	r.log.Warn().
		Str("ref", articleRef).
		Str("article_number", articleNumber).
		Str("customer", customerKey).
		Msg("no price found, using 0.0")
	if r.sink != nil {
		r.sink.MissingPrice(customerKey, articleRef, articleNumber)
	}
	return 0.0
}

// resolveArticleNumber picks the article number to price:
// favorite article, then the ref map, then the ref itself. A non-numeric
// ref without a mapping is reported as a missing mapping
func (r *Resolver) resolveArticleNumber(customerKey, materialRef string) string {
	if fav := r.favoriteArticle(customerKey, materialRef); fav != "" {
		return fav
	}

	if mapped, ok := r.refMap[materialRef]; ok && mapped != "" {
		return strings.TrimSpace(mapped)
	}

	if !isDigits(materialRef) && r.sink != nil {
		r.sink.MissingMaterialMapping(materialRef)
	}
	return materialRef
}

func (r *Resolver) favoriteArticle(customerKey, materialRef string) string {
	if customerKey == "" {
		return ""
	}
	cust, ok := r.favorites["customer:"+strings.TrimSpace(customerKey)]
	if !ok {
		return ""
	}
	return strings.TrimSpace(cust[materialRef])
}

// customerPrices returns the cached price list for customerKey,
// loading it from disk on first use
func (r *Resolver) customerPrices(customerKey string) map[string]float64 {
	if customerKey == "" || r.dataDir == "" {
		return nil
	}

	r.mu.RLock()
	cached, ok := r.custCache[customerKey]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	prices := map[string]float64{}
	path := filepath.Join(r.dataDir, "customers", customerKey, "price_list.json")
	raw, err := os.ReadFile(path)
	if err == nil {
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			r.log.Warn().Err(err).Str("customer", customerKey).Msg("bad customer price list")
		} else {
			for art, v := range data {
				if p, ok := toFloat(v); ok {
					prices[strings.TrimSpace(art)] = p
				}
			}
		}
	}

	r.mu.Lock()
	r.custCache[customerKey] = prices
	r.mu.Unlock()
	return prices
}

// loadCatalogs merges price_catalog.json with every price_catalog_*.json.
// The primary file and earlier extras win on article-number conflicts
func (r *Resolver) loadCatalogs() {
	dir := filepath.Join(r.dataDir, "catalogs")
	primary := filepath.Join(dir, "price_catalog.json")

	if rows := r.loadCatalogFile(primary); rows != nil {
		for art, p := range rows {
			r.catalog[art] = p
		}
	}

	extras, _ := filepath.Glob(filepath.Join(dir, "price_catalog_*.json"))
	sort.Strings(extras)
	for _, path := range extras {
		added := 0
		for art, p := range r.loadCatalogFile(path) {
			if _, exists := r.catalog[art]; !exists {
				r.catalog[art] = p
				added++
			}
		}
		r.log.Info().
			Str("file", filepath.Base(path)).
			Int("added", added).
			Msg("merged extra price catalog")
	}
}

func (r *Resolver) loadCatalogFile(path string) map[string]float64 {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		r.log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("bad price catalog")
		return nil
	}

	out := map[string]float64{}
	for _, row := range rows {
		art := strings.TrimSpace(asString(row["artikelnummer"]))
		if art == "" {
			continue
		}
		if p, ok := toFloat(row["gn_pris"]); ok {
			out[art] = p
		}
	}
	return out
}

func (r *Resolver) loadRefMap() {
	path := filepath.Join(r.dataDir, "catalogs", "material_ref_map.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		r.log.Warn().Err(err).Msg("bad material ref map")
		return
	}
	for ref, art := range data {
		s := strings.TrimSpace(asString(art))
		if s != "" {
			r.refMap[ref] = s
		}
	}
}

func (r *Resolver) loadFavorites() {
	path := filepath.Join(r.dataDir, "customers", "favorites.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var data map[string]map[string]struct {
		ArticleNumber string `json:"article_number"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		r.log.Warn().Err(err).Msg("bad favorites file")
		return
	}
	for custKey, refs := range data {
		inner := map[string]string{}
		for ref, entry := range refs {
			if entry.ArticleNumber != "" {
				inner[ref] = entry.ArticleNumber
			}
		}
		r.favorites[custKey] = inner
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
