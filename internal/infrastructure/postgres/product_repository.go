package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository over PostgreSQL (usable with pool
// or tx). name_folded holds the lowercase diacritic-stripped name and is
// written on every insert and update; SearchByName matches against it.
type ProductRepo struct {
	q Querier
	// fold produces the normalized form stored in name_folded. Injected so
	// persistence shares one folding function with the search use case.
	fold func(string) string
}

// NewProductRepository builds the catalog adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q, fold: defaultFold}
}

// defaultFold is set by the composition root; identity until then.
var defaultFold = func(s string) string { return s }

// SetFold installs the folding function used for name_folded. Call once at
// startup before any repository is used.
func SetFold(fn func(string) string) {
	if fn != nil {
		defaultFold = fn
	}
}

const productColumns = `id, sku, barcode, name, unit, price, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Unit, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, name_folded, unit, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, query, p.ID, p.SKU, p.Barcode, p.Name, r.fold(p.Name), p.Unit, p.Price, p.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns one product, nil when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindByIdentifier matches SKU or barcode exactly.
func (r *ProductRepo) FindByIdentifier(ctx context.Context, identifier string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 OR (barcode <> '' AND barcode = $1) LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by identifier: %w", err)
	}
	return p, nil
}

// SearchByName matches the folded query as a substring of the folded name.
func (r *ProductRepo) SearchByName(ctx context.Context, folded string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name_folded LIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, folded, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Unit, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update persists product edits. SKU is immutable.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET barcode = $2, name = $3, name_folded = $4, unit = $5, price = $6, active = $7, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Barcode, p.Name, r.fold(p.Name), p.Unit, p.Price, p.Active)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns products, newest first.
func (r *ProductRepo) List(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Unit, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
