// Package memory holds in-memory repository implementations used by the
// application-layer tests. State lives in one Store so a test can wire every
// repository against the same data; the TxRunner snapshots the Store and
// restores it on error, mirroring a rolled-back transaction.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
)

// Store is the shared state behind every in-memory repository.
type Store struct {
	mu           sync.Mutex
	products     map[string]entity.Product
	locations    map[string]entity.Location
	users        map[string]entity.User
	entries      map[string]entity.StockEntry
	reservations map[string]entity.Reservation
	transactions map[string]entity.Transaction
	approvals    map[string]entity.ApprovalRequest
	audits       []entity.AuditLogEntry

	seq int64 // monotonic tiebreaker for created-at ordering
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		products:     map[string]entity.Product{},
		locations:    map[string]entity.Location{},
		users:        map[string]entity.User{},
		entries:      map[string]entity.StockEntry{},
		reservations: map[string]entity.Reservation{},
		transactions: map[string]entity.Transaction{},
		approvals:    map[string]entity.ApprovalRequest{},
	}
}

func (s *Store) nextTime() time.Time {
	s.seq++
	return time.Unix(0, s.seq)
}

// snapshot copies the whole state. Mutations always replace whole values, so a
// map copy is enough to make restore safe.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewStore()
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.locations {
		snap.locations[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.entries {
		snap.entries[k] = v
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	for k, v := range s.transactions {
		snap.transactions[k] = v
	}
	for k, v := range s.approvals {
		snap.approvals[k] = v
	}
	snap.audits = append([]entity.AuditLogEntry(nil), s.audits...)
	snap.seq = s.seq
	return snap
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.locations = snap.locations
	s.users = snap.users
	s.entries = snap.entries
	s.reservations = snap.reservations
	s.transactions = snap.transactions
	s.approvals = snap.approvals
	s.audits = snap.audits
	s.seq = snap.seq
}

// SeedProduct inserts a product directly.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// SeedLocation inserts a location directly.
func (s *Store) SeedLocation(l entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = l
}

// SeedApprovedStock inserts an approved ledger entry and returns its id.
func (s *Store) SeedApprovedStock(productID, locationID string, qty int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.entries[id] = entity.StockEntry{
		ID:         id,
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   qty,
		Status:     entity.StockStatusApproved,
		InputBy:    "seed",
		CreatedAt:  s.nextTime(),
	}
	return id
}

// --- StockRepository ---

// StockRepo is the in-memory stock ledger.
type StockRepo struct{ s *Store }

func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) CreateEntry(_ context.Context, e *entity.StockEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.s.nextTime()
	}
	r.s.entries[cp.ID] = cp
	return nil
}

func (r *StockRepo) GetEntry(_ context.Context, id string) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := e
	return &cp, nil
}

func (r *StockRepo) GetEntryForUpdate(ctx context.Context, id string) (*entity.StockEntry, error) {
	return r.GetEntry(ctx, id)
}

func (r *StockRepo) UpdateEntryStatus(_ context.Context, id, status, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	e.Status = status
	e.ApprovedBy = &actor
	e.ApprovedAt = &now
	r.s.entries[id] = e
	return nil
}

func (r *StockRepo) ListEntries(_ context.Context, productID, locationID, status string, limit int) ([]*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockEntry
	for _, e := range r.s.entries {
		if productID != "" && e.ProductID != productID {
			continue
		}
		if locationID != "" && e.LocationID != locationID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		cp := e
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *StockRepo) SumApproved(_ context.Context, productID, locationID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, e := range r.s.entries {
		if e.ProductID == productID && e.LocationID == locationID && e.Status == entity.StockStatusApproved {
			sum += e.Quantity
		}
	}
	return sum, nil
}

func (r *StockRepo) SumApprovedForUpdate(ctx context.Context, productID, locationID string) (int64, error) {
	return r.SumApproved(ctx, productID, locationID)
}

func (r *StockRepo) ApplyDeltaToEntry(_ context.Context, entryID string, delta int64, adjustmentType string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[entryID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if e.Status != entity.StockStatusApproved {
		return 0, domain.ErrConflict
	}
	newQty := e.Quantity + delta
	if adjustmentType == entity.AdjustmentSet {
		newQty = delta
	}
	if newQty < 0 {
		return 0, &domain.IntegrityError{
			Op:     "apply adjustment",
			Detail: fmt.Sprintf("entry %s: quantity %d with delta %d goes negative", entryID, e.Quantity, delta),
		}
	}
	e.Quantity = newQty
	r.s.entries[entryID] = e
	return newQty, nil
}

func (r *StockRepo) DeductApproved(_ context.Context, productID, locationID string, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, e := range r.s.entries {
		if e.ProductID == productID && e.LocationID == locationID && e.Status == entity.StockStatusApproved && e.Quantity > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.s.entries[ids[i]].CreatedAt.Before(r.s.entries[ids[j]].CreatedAt)
	})
	remaining := qty
	for _, id := range ids {
		if remaining == 0 {
			break
		}
		e := r.s.entries[id]
		take := e.Quantity
		if take > remaining {
			take = remaining
		}
		e.Quantity -= take
		r.s.entries[id] = e
		remaining -= take
	}
	if remaining > 0 {
		return &domain.IntegrityError{
			Op:     "deduct stock",
			Detail: fmt.Sprintf("product %s at %s: short %d of %d", productID, locationID, remaining, qty),
		}
	}
	return nil
}

func (r *StockRepo) RestoreApproved(_ context.Context, productID, locationID string, qty int64, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var newestID string
	var newest time.Time
	for id, e := range r.s.entries {
		if e.ProductID == productID && e.LocationID == locationID && e.Status == entity.StockStatusApproved {
			if newestID == "" || e.CreatedAt.After(newest) {
				newestID, newest = id, e.CreatedAt
			}
		}
	}
	if newestID == "" {
		id := uuid.New().String()
		r.s.entries[id] = entity.StockEntry{
			ID:         id,
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   qty,
			Status:     entity.StockStatusApproved,
			InputBy:    actor,
			CreatedAt:  r.s.nextTime(),
		}
		return nil
	}
	e := r.s.entries[newestID]
	e.Quantity += qty
	r.s.entries[newestID] = e
	return nil
}

// --- ReservationRepository ---

// ReservationRepo is the in-memory cart line store.
type ReservationRepo struct{ s *Store }

func NewReservationRepository(s *Store) *ReservationRepo { return &ReservationRepo{s: s} }

func (r *ReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *res
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.s.nextTime()
	}
	r.s.reservations[cp.ID] = cp
	return nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := res
	return &cp, nil
}

func (r *ReservationRepo) GetOwnerLine(_ context.Context, owner, productID, locationID string) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.reservations {
		if res.Owner == owner && res.ProductID == productID && res.LocationID == locationID {
			cp := res
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ReservationRepo) UpdateQuantity(_ context.Context, id string, qty int64, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Quantity = qty
	res.ExpiresAt = expiresAt
	r.s.reservations[id] = res
	return nil
}

func (r *ReservationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reservations, id)
	return nil
}

func (r *ReservationRepo) ListByOwnerLocation(_ context.Context, owner, locationID string) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Reservation
	for _, res := range r.s.reservations {
		if res.Owner == owner && res.LocationID == locationID {
			cp := res
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *ReservationRepo) ListByOwnerLocationForUpdate(ctx context.Context, owner, locationID string) ([]*entity.Reservation, error) {
	return r.ListByOwnerLocation(ctx, owner, locationID)
}

func (r *ReservationRepo) DeleteByOwnerLocation(_ context.Context, owner, locationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, res := range r.s.reservations {
		if res.Owner == owner && res.LocationID == locationID {
			delete(r.s.reservations, id)
		}
	}
	return nil
}

func (r *ReservationRepo) SumActiveByPair(_ context.Context, productID, locationID, excludeOwner string, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, res := range r.s.reservations {
		if res.ProductID != productID || res.LocationID != locationID {
			continue
		}
		if !res.ExpiresAt.After(now) {
			continue
		}
		if excludeOwner != "" && res.Owner == excludeOwner {
			continue
		}
		sum += res.Quantity
	}
	return sum, nil
}

func (r *ReservationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, res := range r.s.reservations {
		if !res.ExpiresAt.After(now) {
			delete(r.s.reservations, id)
			n++
		}
	}
	return n, nil
}

// --- TransactionRepository ---

// TransactionRepo is the in-memory sales store.
type TransactionRepo struct{ s *Store }

func NewTransactionRepository(s *Store) *TransactionRepo { return &TransactionRepo{s: s} }

func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.transactions {
		if existing.InvoiceNumber == tx.InvoiceNumber {
			return domain.ErrDuplicateInvoice
		}
	}
	cp := *tx
	cp.Items = append([]entity.TransactionItem(nil), tx.Items...)
	r.s.transactions[cp.ID] = cp
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := tx
	cp.Items = append([]entity.TransactionItem(nil), tx.Items...)
	return &cp, nil
}

func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *TransactionRepo) GetByInvoiceNumber(_ context.Context, invoiceNumber string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tx := range r.s.transactions {
		if tx.InvoiceNumber == invoiceNumber {
			cp := tx
			cp.Items = append([]entity.TransactionItem(nil), tx.Items...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepo) MarkDeleted(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	tx.Status = entity.TxStatusDeleted
	r.s.transactions[id] = tx
	return nil
}

func (r *TransactionRepo) ListByLocation(_ context.Context, locationID string, limit int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Transaction
	for _, tx := range r.s.transactions {
		if tx.LocationID == locationID {
			cp := tx
			cp.Items = append([]entity.TransactionItem(nil), tx.Items...)
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// --- ApprovalRepository ---

// ApprovalRepo is the in-memory approval request store.
type ApprovalRepo struct{ s *Store }

func NewApprovalRepository(s *Store) *ApprovalRepo { return &ApprovalRepo{s: s} }

func (r *ApprovalRepo) Create(_ context.Context, a *entity.ApprovalRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.s.nextTime()
	}
	r.s.approvals[cp.ID] = cp
	return nil
}

func (r *ApprovalRepo) GetByID(_ context.Context, id string) (*entity.ApprovalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.approvals[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (r *ApprovalRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *ApprovalRepo) FindPendingBySubject(_ context.Context, requestType, subjectID string) (*entity.ApprovalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.approvals {
		if a.Type == requestType && a.SubjectID == subjectID && a.Status == entity.RequestStatusPending {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ApprovalRepo) SetApproved(_ context.Context, id, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.approvals[id]
	if !ok || a.Status != entity.RequestStatusPending {
		return domain.ErrConflict
	}
	now := time.Now()
	a.Status = entity.RequestStatusApproved
	a.ApprovedBy = &actor
	a.ApprovedAt = &now
	r.s.approvals[id] = a
	return nil
}

func (r *ApprovalRepo) SetRejected(_ context.Context, id, actor, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.approvals[id]
	if !ok || a.Status != entity.RequestStatusPending {
		return domain.ErrConflict
	}
	now := time.Now()
	a.Status = entity.RequestStatusRejected
	a.RejectedBy = &actor
	a.RejectedAt = &now
	a.RejectionReason = &reason
	r.s.approvals[id] = a
	return nil
}

func (r *ApprovalRepo) List(_ context.Context, status string, limit int) ([]*entity.ApprovalRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ApprovalRequest
	for _, a := range r.s.approvals {
		if status != "" && a.Status != status {
			continue
		}
		cp := a
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *ApprovalRepo) SumPendingWithdrawals(_ context.Context, productID, locationID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, a := range r.s.approvals {
		if a.Type != entity.RequestStockAdjustment || a.Status != entity.RequestStatusPending {
			continue
		}
		if a.ProductID == nil || *a.ProductID != productID || a.LocationID == nil || *a.LocationID != locationID {
			continue
		}
		var p entity.StockAdjustmentPayload
		if err := json.Unmarshal(a.Payload, &p); err != nil {
			continue
		}
		switch p.Type {
		case entity.AdjustmentSubtract:
			sum += p.Quantity
		case entity.AdjustmentSet:
			// A set below the current entry quantity is a withdrawal of the
			// difference; a set above it withdraws nothing.
			if e, ok := r.s.entries[p.EntryID]; ok && e.Quantity > p.Quantity {
				sum += e.Quantity - p.Quantity
			}
		}
	}
	return sum, nil
}

// --- AuditRepository ---

// AuditRepo is the in-memory audit log.
type AuditRepo struct{ s *Store }

func NewAuditRepository(s *Store) *AuditRepo { return &AuditRepo{s: s} }

func (r *AuditRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	if cp.Timestamp.IsZero() {
		cp.Timestamp = r.s.nextTime()
	}
	r.s.audits = append(r.s.audits, cp)
	return nil
}

func (r *AuditRepo) Query(_ context.Context, subjectType, subjectID, actor string) ([]*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.AuditLogEntry
	for i := range r.s.audits {
		e := r.s.audits[i]
		if subjectType != "" && e.SubjectType != subjectType {
			continue
		}
		if subjectID != "" && e.SubjectID != subjectID {
			continue
		}
		if actor != "" && e.Actor != actor {
			continue
		}
		cp := e
		list = append(list, &cp)
	}
	return list, nil
}

// --- ProductRepository ---

// ProductRepo is the in-memory catalog.
type ProductRepo struct {
	s *Store
	// Fold normalizes names for SearchByName. Defaults to lowercase.
	Fold func(string) string
}

func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s, Fold: strings.ToLower}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrConflict
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *ProductRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == identifier || (p.Barcode != "" && p.Barcode == identifier) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) SearchByName(_ context.Context, folded string, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if strings.Contains(r.Fold(p.Name), folded) {
			cp := p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// --- LocationRepository ---

// LocationRepo is the in-memory location store.
type LocationRepo struct{ s *Store }

func NewLocationRepository(s *Store) *LocationRepo { return &LocationRepo{s: s} }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.locations {
		if existing.Code == l.Code {
			return domain.ErrConflict
		}
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Location
	for _, l := range r.s.locations {
		cp := l
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// --- UserRepository ---

// UserRepo is the in-memory user store.
type UserRepo struct{ s *Store }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrConflict
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}
