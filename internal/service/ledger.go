package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/domain"
	pkgerrors "github.com/paothinnapat/sales-tracker/pkg/errors"
)

// LedgerSheet is the slice of the spreadsheet service the recorder needs:
// header initialization and batched row appends.
type LedgerSheet interface {
	EnsureHeader(ctx context.Context, header []string) error
	AppendRows(ctx context.Context, rows [][]interface{}) (int, error)
}

// LedgerService validates sale submissions and records them as ledger rows
type LedgerService struct {
	openSheet func() LedgerSheet
	seen      *submissionLog
	logger    *zap.Logger
}

// NewLedgerService creates a ledger service. openSheet is called once per
// recorded sale so every request works against its own sheet handle; no
// session is shared between requests.
func NewLedgerService(openSheet func() LedgerSheet, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		openSheet: openSheet,
		seen:      newSubmissionLog(),
		logger:    logger,
	}
}

// RecordSale validates the submission, makes sure the ledger sheet has its
// header row, and appends one row per line item in a single batch call.
// It returns the number of rows appended.
//
// A submission whose submission_id was already recorded by this process is
// acknowledged with its original count and appended nothing. The log is
// process-local, so deduplication across restarts or replicas is not
// guaranteed; a retried submission can still produce duplicate rows then.
func (s *LedgerService) RecordSale(ctx context.Context, req *SubmitSaleRequest) (int, error) {
	if len(req.Items) == 0 {
		return 0, &pkgerrors.ErrValidation{Message: "No items to record."}
	}

	if req.SubmissionID != "" {
		if count, ok := s.seen.Lookup(req.SubmissionID); ok {
			s.logger.Info("Submission already recorded, skipping append",
				zap.String("submission_id", req.SubmissionID),
				zap.Int("count", count),
			)
			return count, nil
		}
	}

	sub := req.ToDomain()
	sheet := s.openSheet()

	if err := sheet.EnsureHeader(ctx, domain.SheetHeader); err != nil {
		s.logger.Error("Failed to ensure ledger header row", zap.Error(err))
		return 0, &pkgerrors.ErrUpstream{Op: "ensure header row", Err: err}
	}

	rows := domain.SheetRows(sub)
	count, err := sheet.AppendRows(ctx, rows)
	if err != nil {
		s.logger.Error("Failed to append ledger rows",
			zap.Error(err),
			zap.Int("row_count", len(rows)),
		)
		return 0, &pkgerrors.ErrUpstream{Op: "append rows", Err: err}
	}

	if req.SubmissionID != "" {
		s.seen.Record(req.SubmissionID, count)
	}

	s.logger.Info("Recorded sales",
		zap.String("date", sub.Date),
		zap.String("store", sub.Store),
		zap.Int("count", count),
		zap.Int("total", sub.Total),
	)
	return count, nil
}
