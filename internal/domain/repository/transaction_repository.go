package repository

import (
	"context"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// TransactionRepository is the port for committed sales. Create persists the
// header and all line items; ErrDuplicateInvoice signals an invoice number
// collision the caller must retry with a fresh number.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// GetByIDForUpdate locks the header row during deletion reversal.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Transaction, error)
	MarkDeleted(ctx context.Context, id string) error
	ListByLocation(ctx context.Context, locationID string, limit int) ([]*entity.Transaction, error)
}
