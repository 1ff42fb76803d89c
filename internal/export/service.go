package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"claims-assistant/internal/common"
	"claims-assistant/internal/repository"
)

const listLimit = 1000

// Service is a tiny façade over the claims repository that produces XLSX
// bytes for exports.
type Service struct {
	claims repository.ClaimRepository
	logger *slog.Logger
}

func NewService(claims repository.ClaimRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{claims: claims, logger: logger}
}

// ExportClaimsXLSX returns an XLSX workbook (as bytes) with one row per
// stored claim for the given user. Absent fields render as empty cells.
// A user with no stored claims yields common.ErrNotFound, not an empty
// workbook.
func (s *Service) ExportClaimsXLSX(ctx context.Context, userID string) ([]byte, error) {
	start := time.Now()

	recs, err := s.claims.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	if len(recs) == 0 {
		return nil, common.WrapError(common.ErrNotFound, "no claims to export")
	}

	f := excelize.NewFile()
	const sheet = "Claims"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Invoice Date",
		"Claimant Name",
		"Policy Number",
		"Provider",
		"Total Claim Amount",
		"Items",
		"Stored At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range recs {
		values := []any{
			stringField(rec.Doc, "invoice_date"),
			stringField(rec.Doc, "claimant_name"),
			stringField(rec.Doc, "policy_number"),
			stringField(rec.Doc, "provider"),
			rec.Doc["total_claim_amount"],
			itemSummary(rec.Doc),
			rec.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %w", common.ErrInternal, err)
	}

	s.logger.Info("export.claims.ok",
		"user_id", userID, "rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// itemSummary flattens the itemized list into "name xqty" cells; entries
// missing a usable name are skipped rather than rendered as noise.
func itemSummary(doc map[string]any) string {
	items, ok := doc["items"].([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, el := range items {
		obj, isObj := el.(map[string]any)
		if !isObj {
			continue
		}
		name, _ := obj["name"].(string)
		if name == "" {
			continue
		}
		if qty, hasQty := obj["quantity"]; hasQty && qty != nil {
			parts = append(parts, fmt.Sprintf("%s x%v", name, qty))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "; ")
}
