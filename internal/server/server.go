// Package server is the thin HTTP layer over the claims pipeline: routing,
// request parsing, CORS, and chat-style response envelopes.
package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claims-assistant/internal/common"
	"claims-assistant/internal/export"
	"claims-assistant/internal/extract"
	"claims-assistant/internal/ocr"
	"claims-assistant/internal/repository"
	"claims-assistant/internal/rules"
)

// ClaimsHandler bundles the collaborators the HTTP surface needs. All of
// them are injected; nothing here is ambient global state.
type ClaimsHandler struct {
	orchestrator *extract.Orchestrator
	generator    extract.TextGenerator
	ocrReader    ocr.Reader
	claims       repository.ClaimRepository
	validator    *rules.Validator
	exporter     *export.Service
	logger       *slog.Logger
}

func NewClaimsHandler(
	orchestrator *extract.Orchestrator,
	generator extract.TextGenerator,
	ocrReader ocr.Reader,
	claims repository.ClaimRepository,
	validator *rules.Validator,
	exporter *export.Service,
	logger *slog.Logger,
) *ClaimsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClaimsHandler{
		orchestrator: orchestrator,
		generator:    generator,
		ocrReader:    ocrReader,
		claims:       claims,
		validator:    validator,
		exporter:     exporter,
		logger:       logger,
	}
}

// NewRouter wires the gin router: health, claim ingestion, chat, and
// verification endpoints.
func NewRouter(h *ClaimsHandler, corsOrigins string) *gin.Engine {
	r := gin.Default()
	r.Use(requestIDMiddleware())
	r.Use(corsMiddleware(corsOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, friendlyReply("Hey there! Your Claims Processing Chat API is live and ready."))
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/store_claim_text", h.StoreClaimText)
	r.POST("/store_claim_image", h.StoreClaimImage)
	r.GET("/get_claims", h.GetClaims)
	r.GET("/query_claims", h.QueryClaims)
	r.POST("/chat_query", h.ChatQuery)

	r.POST("/claims/verify", h.VerifyClaims)
	r.POST("/claims/validate", h.ValidateClaim)
	r.GET("/claims/export", h.ExportClaims)

	return r
}

// requestIDMiddleware honors an incoming X-Request-ID or mints one, stores
// it on the request context for downstream log correlation, and echoes it
// back in the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

func corsMiddleware(origins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// friendlyReply wraps responses in the chat-style envelope.
func friendlyReply(message string) gin.H {
	return gin.H{"reply": message}
}
