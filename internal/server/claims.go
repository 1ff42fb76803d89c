package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"claims-assistant/internal/chat"
	"claims-assistant/internal/common"
	"claims-assistant/internal/entity"
	"claims-assistant/internal/rules"
)

const (
	summaryLimit = 20
	verifyLimit  = 50
	// chat_query filters the fetched collection caller-side (date window),
	// so it reads far more than the summary endpoints do.
	chatLimit = 500
)

// bindUserID tags the request context with the acting user so downstream
// pipeline logs can correlate on it.
func bindUserID(c *gin.Context, userID string) {
	c.Request = c.Request.WithContext(common.WithUserID(c.Request.Context(), userID))
}

// ClaimTextRequest is the body for text-based claim ingestion.
type ClaimTextRequest struct {
	OCRText string `json:"ocr_text" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

// ChatQueryRequest is the body for free-form chat over stored claims.
type ChatQueryRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Question     string `json:"question" binding:"required"`
	PolicyNumber string `json:"policy_number"`
	FromDate     string `json:"from_date"` // "YYYY-MM-DD" recommended
	ToDate       string `json:"to_date"`   // "YYYY-MM-DD" recommended
}

// StoreClaimText handles POST /store_claim_text: extract structured fields
// from raw invoice text, persist them, and confirm conversationally.
func (h *ClaimsHandler) StoreClaimText(c *gin.Context) {
	var req ClaimTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}

	bindUserID(c, req.UserID)
	claim, err := h.orchestrator.ExtractClaim(c.Request.Context(), req.OCRText)
	if err != nil {
		if errors.Is(err, common.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "ocr_text is empty"))
			return
		}
		h.logger.Error("server.store_claim_text.extract_failed", "error", err)
		c.JSON(http.StatusBadGateway, errorEnvelope("EXTRACTION_FAILED", "Something went wrong reading your claim. Please try again."))
		return
	}
	if claim.IsEmpty() {
		c.JSON(http.StatusOK, friendlyReply("Hmm... I couldn't read claim details from that text."))
		return
	}

	if _, err := h.claims.Insert(c.Request.Context(), req.UserID, claim); err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("STORE_FAILED", "I couldn't save your claim right now. Please try again."))
		return
	}

	date := "an unknown date"
	if claim.InvoiceDate != nil {
		date = *claim.InvoiceDate
	}
	c.JSON(http.StatusOK, friendlyReply(
		"Got it! I've stored your claim for "+date+". Amount recorded: "+amountDisplay(claim)+"."))
}

// StoreClaimImage handles POST /store_claim_image: OCR the uploaded image,
// then run the same extraction pipeline over the recognized text.
func (h *ClaimsHandler) StoreClaimImage(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "user_id query parameter is required"))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "file upload is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "could not open upload"))
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil || len(image) == 0 {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "empty file upload"))
		return
	}

	bindUserID(c, userID)

	text, err := h.ocrReader.ExtractText(c.Request.Context(), image)
	if err != nil {
		h.logger.Error("server.store_claim_image.ocr_failed", "error", err)
		c.JSON(http.StatusBadGateway, errorEnvelope("OCR_FAILED", "Something went wrong reading your image. Please try again."))
		return
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusOK, friendlyReply("I couldn't read any text from that image. Can you try another?"))
		return
	}

	claim, err := h.orchestrator.ExtractClaim(c.Request.Context(), text)
	if err != nil {
		h.logger.Error("server.store_claim_image.extract_failed", "error", err)
		c.JSON(http.StatusBadGateway, errorEnvelope("EXTRACTION_FAILED", "Something went wrong reading your claim. Please try again."))
		return
	}

	if _, err := h.claims.Insert(c.Request.Context(), userID, claim); err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("STORE_FAILED", "I couldn't save your claim right now. Please try again."))
		return
	}
	c.JSON(http.StatusOK, friendlyReply("Claim stored! Amount recorded: "+amountDisplay(claim)+"."))
}

// GetClaims handles GET /get_claims: a templated Markdown summary of the
// user's stored claims.
func (h *ClaimsHandler) GetClaims(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "user_id query parameter is required"))
		return
	}

	bindUserID(c, userID)
	records, err := h.claims.ListByUser(c.Request.Context(), userID, summaryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("QUERY_FAILED", "I couldn't fetch your claims right now."))
		return
	}
	c.JSON(http.StatusOK, friendlyReply(chat.Summarize(records)))
}

// QueryClaims handles GET /query_claims, kept for backward compatibility
// with the chat webhook integrations.
func (h *ClaimsHandler) QueryClaims(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	question := strings.TrimSpace(c.Query("question"))
	if userID == "" || question == "" {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "user_id and question query parameters are required"))
		return
	}

	bindUserID(c, userID)
	records, err := h.claims.ListByUser(c.Request.Context(), userID, summaryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("QUERY_FAILED", "I couldn't fetch your claims right now."))
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, friendlyReply("No claims found for you."))
		return
	}

	h.answerFromClaims(c, question, records)
}

// ChatQuery handles POST /chat_query: free-form questions with optional
// policy and date-window filters. The date window is applied caller-side on
// the string invoice_date; the store only filters equalities.
func (h *ClaimsHandler) ChatQuery(c *gin.Context) {
	var req ChatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}

	var (
		records []entity.ClaimRecord
		err     error
	)
	bindUserID(c, req.UserID)
	if req.PolicyNumber != "" {
		records, err = h.claims.ListByUserAndPolicy(c.Request.Context(), req.UserID, req.PolicyNumber, chatLimit)
	} else {
		records, err = h.claims.ListByUser(c.Request.Context(), req.UserID, chatLimit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("QUERY_FAILED", "I couldn't fetch your claims right now."))
		return
	}

	if req.FromDate != "" || req.ToDate != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rules.InDateWindow(rec.Doc, req.FromDate, req.ToDate) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, friendlyReply("I don't see any claims that match that. Want to try different filters?"))
		return
	}

	h.answerFromClaims(c, req.Question, records)
}

func (h *ClaimsHandler) answerFromClaims(c *gin.Context, question string, records []entity.ClaimRecord) {
	prompt := chat.BuildQuestionPrompt(question, records)
	answer, err := h.generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		h.logger.Error("server.chat.generate_failed", "error", err)
		c.JSON(http.StatusBadGateway, errorEnvelope("CHAT_FAILED", "Sorry, I couldn't generate a response."))
		return
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = "Sorry, I couldn't generate a response."
	}
	c.JSON(http.StatusOK, friendlyReply(answer))
}

// VerifyClaims handles POST /claims/verify: fetch candidates by policy
// number and apply the match filters.
func (h *ClaimsHandler) VerifyClaims(c *gin.Context) {
	var q entity.MatchQuery
	if err := c.ShouldBindJSON(&q); err != nil || strings.TrimSpace(q.PolicyNumber) == "" {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "policy_number is required"))
		return
	}

	candidates, err := h.claims.ListByPolicy(c.Request.Context(), q.PolicyNumber, verifyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorEnvelope("QUERY_FAILED", "verification query failed"))
		return
	}

	matches := make([]map[string]any, 0, len(candidates))
	for _, cand := range candidates {
		if !rules.Matches(cand.Doc, q) {
			continue
		}
		doc := map[string]any{"id": cand.ID.String()}
		for k, v := range cand.Doc {
			doc[k] = v
		}
		matches = append(matches, doc)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(matches), "matches": matches})
}

// ValidateClaim handles POST /claims/validate: run the configured business
// rules over a claim document. Rule breaches are reported as error entries,
// never as HTTP failures.
func (h *ClaimsHandler) ValidateClaim(c *gin.Context) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.validator.Validate(doc))
}

// ExportClaims handles GET /claims/export: stream the user's claims as an
// XLSX workbook.
func (h *ClaimsHandler) ExportClaims(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", "user_id query parameter is required"))
		return
	}

	bindUserID(c, userID)
	data, err := h.exporter.ExportClaimsXLSX(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorEnvelope("NOT_FOUND", "no claims to export for that user"))
			return
		}
		c.JSON(http.StatusInternalServerError, errorEnvelope("EXPORT_FAILED", "export failed"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="claims.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func amountDisplay(claim entity.CanonicalClaim) string {
	if claim.TotalClaimAmount == nil {
		return "₹N/A"
	}
	return chat.FormatAmount(*claim.TotalClaimAmount)
}

func errorEnvelope(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
