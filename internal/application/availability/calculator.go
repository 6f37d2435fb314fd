package availability

import (
	"context"
	"time"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// Available derives the sellable quantity for a (product, location) pair:
// approved ledger quantity minus live reservations minus pending withdrawals,
// floored at zero. Every term is read fresh at call time — the result is
// advisory unless the repositories are bound to a transaction.
//
// excludeOwner removes that owner's own reservations from the reserved term.
// Cart mutations pass the calling owner so quantity they already hold is not
// double-counted against them; read-only lookups pass "".
func Available(
	ctx context.Context,
	stockRepo repository.StockRepository,
	resRepo repository.ReservationRepository,
	apprRepo repository.ApprovalRepository,
	productID, locationID, excludeOwner string,
	now time.Time,
) (int64, error) {
	approved, err := stockRepo.SumApproved(ctx, productID, locationID)
	if err != nil {
		return 0, err
	}
	return subtractClaims(ctx, resRepo, apprRepo, approved, productID, locationID, excludeOwner, now)
}

// AvailableLocked is the authoritative variant used inside checkout: the
// approved entries are read under row locks so the sum cannot shift before the
// deduction in the same transaction.
func AvailableLocked(
	ctx context.Context,
	stockRepo repository.StockRepository,
	resRepo repository.ReservationRepository,
	apprRepo repository.ApprovalRepository,
	productID, locationID, excludeOwner string,
	now time.Time,
) (int64, error) {
	approved, err := stockRepo.SumApprovedForUpdate(ctx, productID, locationID)
	if err != nil {
		return 0, err
	}
	return subtractClaims(ctx, resRepo, apprRepo, approved, productID, locationID, excludeOwner, now)
}

func subtractClaims(
	ctx context.Context,
	resRepo repository.ReservationRepository,
	apprRepo repository.ApprovalRepository,
	approved int64,
	productID, locationID, excludeOwner string,
	now time.Time,
) (int64, error) {
	reserved, err := resRepo.SumActiveByPair(ctx, productID, locationID, excludeOwner, now)
	if err != nil {
		return 0, err
	}
	pending, err := apprRepo.SumPendingWithdrawals(ctx, productID, locationID)
	if err != nil {
		return 0, err
	}
	available := approved - reserved - pending
	if available < 0 {
		available = 0
	}
	return available, nil
}
