// Package i18n resolves the UI language: stored preference first, then an
// IP-geolocation guess, then the zh default.
package i18n

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/awsomeshop/awsomeshop/internal/config"
	"github.com/awsomeshop/awsomeshop/internal/session"
)

const (
	LangZH = "zh"
	LangEN = "en"
)

var chineseRegions = map[string]bool{
	"CN": true, "HK": true, "MO": true, "TW": true, "SG": true,
}

type Detector struct {
	http    *http.Client
	apiKey  string
	baseURL string
	store   *session.Store
	log     *slog.Logger
}

func NewDetector(store *session.Store, l *slog.Logger) *Detector {
	if l == nil {
		l = slog.Default()
	}
	return &Detector{
		http:    &http.Client{Timeout: 3 * time.Second},
		apiKey:  config.EnvDefault("IPGEO_API_KEY", ""),
		baseURL: config.EnvDefault("IPGEO_BASE_URL", ""),
		store:   store,
		log:     l,
	}
}

// Resolve returns the language to use and persists a fresh guess so the
// lookup happens at most once.
func (d *Detector) Resolve(ctx context.Context) string {
	if lang, ok := d.store.Language(); ok {
		return lang
	}
	lang := d.guess(ctx)
	d.store.SetLanguage(lang)
	return lang
}

func (d *Detector) guess(ctx context.Context) string {
	if d.apiKey == "" || d.baseURL == "" {
		return LangZH
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.baseURL+"/ipgeo?apiKey="+url.QueryEscape(d.apiKey), nil)
	if err != nil {
		return LangZH
	}
	resp, err := d.http.Do(req)
	if err != nil {
		d.log.Warn("language_detect_failed", "error", err)
		return LangZH
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		d.log.Warn("language_detect_failed", "status", resp.StatusCode)
		return LangZH
	}

	var body struct {
		CountryCode string `json:"country_code2"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		d.log.Warn("language_detect_failed", "error", err)
		return LangZH
	}

	if chineseRegions[body.CountryCode] {
		return LangZH
	}
	return LangEN
}
