package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dineflow/table-orders-api/models"
	"github.com/google/uuid"
)

// BillExport describes a stored bill snapshot
type BillExport struct {
	Key  string   `json:"key"`
	URL  string   `json:"url"`
	Bill BillView `json:"bill"`
}

// BillExportService stores bill snapshots in object storage for the print/PDF collaborator
type BillExportService struct {
	storage  S3Interface
	location *time.Location
	now      func() time.Time
}

// NewBillExportService creates a bill export service backed by storage
func NewBillExportService(storage S3Interface, loc *time.Location) *BillExportService {
	if loc == nil {
		loc = time.Local
	}
	return &BillExportService{
		storage:  storage,
		location: loc,
		now:      time.Now,
	}
}

// Export serializes the order's bill to JSON, uploads it and returns a presigned link.
// The order is only read.
func (s *BillExportService) Export(ctx context.Context, order models.Order) (BillExport, error) {
	bill := ProjectBill(order, s.location)

	body, err := json.Marshal(bill)
	if err != nil {
		return BillExport{}, fmt.Errorf("failed to encode bill: %w", err)
	}

	suffix, err := uuid.NewRandom()
	if err != nil {
		return BillExport{}, fmt.Errorf("failed to name bill: %w", err)
	}
	key := fmt.Sprintf("bills/%s_%d_%s.json", bill.Reference, s.now().UnixMilli(), suffix.String()[:8])
	if err := s.storage.PutObject(ctx, key, body, "application/json"); err != nil {
		return BillExport{}, fmt.Errorf("failed to store bill: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, key)
	if err != nil {
		return BillExport{}, fmt.Errorf("failed to sign bill url: %w", err)
	}

	return BillExport{Key: key, URL: url, Bill: bill}, nil
}
