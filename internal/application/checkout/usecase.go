package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/availability"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// invoiceRetries bounds how often a checkout is re-attempted after an invoice
// number collision.
const invoiceRetries = 3

// UseCase converts a reservation set into a committed transaction and ledger
// deduction, or fails with no state change at all. The earlier cart checks
// were advisory; step 3's re-validation here runs under row locks and is
// authoritative.
type UseCase struct {
	txRunner      TxRunner
	invoicePrefix string
}

// NewUseCase builds the checkout engine.
func NewUseCase(txRunner TxRunner, invoicePrefix string) *UseCase {
	return &UseCase{txRunner: txRunner, invoicePrefix: invoicePrefix}
}

// Input are the checkout parameters. Owner and location identify the
// reservation set; discount and cash are the till-side figures.
type Input struct {
	Owner        string
	LocationID   string
	Discount     decimal.Decimal
	CashReceived decimal.Decimal
}

// Checkout commits the owner's cart at the location. On success the returned
// transaction is fully persisted, stock is deducted and the reservation rows
// are gone; on any error nothing has changed.
func (uc *UseCase) Checkout(ctx context.Context, in Input) (*entity.Transaction, error) {
	if in.Owner == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.CashReceived.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Transaction
	var err error
	for attempt := 0; attempt < invoiceRetries; attempt++ {
		result, err = uc.attempt(ctx, in)
		if errors.Is(err, domain.ErrDuplicateInvoice) {
			continue // new number, whole transaction retried
		}
		break
	}
	return result, err
}

func (uc *UseCase) attempt(ctx context.Context, in Input) (*entity.Transaction, error) {
	now := time.Now()
	invoiceNumber := NewInvoiceNumber(uc.invoicePrefix, now)
	var committed *entity.Transaction

	err := uc.txRunner.RunCheckout(ctx, func(
		resRepo repository.ReservationRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		apprRepo repository.ApprovalRepository,
	) error {
		// Step 1: exclusive lock on the owner's reservation set.
		lines, err := resRepo.ListByOwnerLocationForUpdate(ctx, in.Owner, in.LocationID)
		if err != nil {
			return err
		}
		active := lines[:0]
		for _, l := range lines {
			if !l.Expired(now) {
				active = append(active, l)
			}
		}
		if len(active) == 0 {
			return domain.ErrEmptyCart
		}

		// Step 3: authoritative re-validation of every line under row locks.
		// The owner's own held quantity is the one being committed, so it is
		// excluded from the reserved term.
		items := make([]entity.TransactionItem, 0, len(active))
		subtotal := decimal.Zero
		for _, line := range active {
			avail, err := availability.AvailableLocked(ctx, stockRepo, resRepo, apprRepo,
				line.ProductID, line.LocationID, in.Owner, now)
			if err != nil {
				return err
			}
			if line.Quantity > avail {
				return &domain.InsufficientStockError{ProductID: line.ProductID, Available: avail}
			}
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			lineSubtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, entity.TransactionItem{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
				Subtotal:    lineSubtotal,
			})
			subtotal = subtotal.Add(lineSubtotal)
		}

		if in.Discount.GreaterThan(subtotal) {
			return domain.ErrInvalidInput
		}
		total := subtotal.Sub(in.Discount)
		if in.CashReceived.LessThan(total) {
			return domain.ErrInvalidInput
		}

		// Step 5: transaction + snapshotted lines + ledger deduction +
		// reservation removal, all in this unit of work.
		tx := &entity.Transaction{
			ID:            uuid.New().String(),
			InvoiceNumber: invoiceNumber,
			Actor:         in.Owner,
			LocationID:    in.LocationID,
			Subtotal:      subtotal,
			Discount:      in.Discount,
			Total:         total,
			CashReceived:  in.CashReceived,
			Change:        in.CashReceived.Sub(total),
			Status:        entity.TxStatusCompleted,
			CreatedAt:     now,
			UpdatedAt:     now,
			Items:         items,
		}
		for i := range tx.Items {
			tx.Items[i].TxID = tx.ID
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		for _, item := range tx.Items {
			if err := stockRepo.DeductApproved(ctx, item.ProductID, in.LocationID, item.Quantity); err != nil {
				return err
			}
		}
		if err := resRepo.DeleteByOwnerLocation(ctx, in.Owner, in.LocationID); err != nil {
			return err
		}
		committed = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}
