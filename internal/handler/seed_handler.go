package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/seekers/backend/internal/service"
	"github.com/seekers/backend/pkg/auth"
)

// SeedHandler exposes the sample-data seeder over HTTP.
type SeedHandler struct {
	seed     service.SeedService
	secret   string
	autoSeed bool
}

// NewSeedHandler は SeedHandler を生成する。secret は POST の Bearer トークン
func NewSeedHandler(seed service.SeedService, secret string, autoSeed bool) *SeedHandler {
	return &SeedHandler{seed: seed, secret: secret, autoSeed: autoSeed}
}

// Seed は POST /api/seed を処理する
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok || h.secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		slog.Warn("seed request rejected", "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.run(w, r)
}

// Auto は GET /api/seed を処理する。AUTO_SEED_DATABASE が無効なら何もしない
func (h *SeedHandler) Auto(w http.ResponseWriter, r *http.Request) {
	if !h.autoSeed {
		writeMessage(w, http.StatusOK, "Auto-seeding disabled. Set AUTO_SEED_DATABASE=true to enable.")
		return
	}
	h.run(w, r)
}

func (h *SeedHandler) run(w http.ResponseWriter, r *http.Request) {
	res, err := h.seed.SeedIfNeeded(r.Context())
	if err != nil {
		writeServiceError(w, err, "seed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
