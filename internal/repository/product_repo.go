package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nexify_backend/internal/model"

	"github.com/jackc/pgx/v5"
)

const (
	featuredLimit = 4
	trendingLimit = 6
	risingLimit   = 6
	// minimum vote_count for the rising listing
	risingThreshold = 10
)

const productColumns = `id, owner, owner_name, owner_image, product_name, details, image, tags,
            status, featured, vote_count, voter, report, sort, timestamp`

// ProductRepository defines operations for product documents
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByOwner(ctx context.Context, owner string) ([]model.Product, error)
	UpdateOwnerFields(ctx context.Context, product *model.Product) (int64, error)
	UpdateStatus(ctx context.Context, id, status string, sort int) (int64, error)
	SetFeatured(ctx context.Context, id string) (int64, error)
	AddVote(ctx context.Context, id, voter string) (int64, error)
	SetReport(ctx context.Context, id, report string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	ListAccepted(ctx context.Context, search string, page, limit int) ([]model.Product, int, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	ListTrending(ctx context.Context) ([]model.Product, error)
	ListRising(ctx context.Context) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListReported(ctx context.Context) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product document
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (id, owner, owner_name, owner_image, product_name, details, image, tags, status, featured, vote_count, voter, report, sort, timestamp)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, sql,
		p.ID, p.Owner, p.OwnerName, p.OwnerImage, p.ProductName, p.Details, p.Image, p.Tags,
		p.Status, p.Featured, p.VoteCount, p.Voter, p.Report, p.Sort, p.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.Owner, &p.OwnerName, &p.OwnerImage, &p.ProductName, &p.Details, &p.Image, &p.Tags,
		&p.Status, &p.Featured, &p.VoteCount, &p.Voter, &p.Report, &p.Sort, &p.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindByOwner retrieves every product submitted by the given owner email
func (r *productRepository) FindByOwner(ctx context.Context, owner string) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE owner = $1 ORDER BY timestamp DESC`
	return r.queryProducts(ctx, sql, owner)
}

// UpdateOwnerFields overwrites the owner-editable fields. Status, featured,
// votes and report are never touched here.
func (r *productRepository) UpdateOwnerFields(ctx context.Context, p *model.Product) (int64, error) {
	sql := `UPDATE products
            SET product_name = $1, details = $2, image = $3, tags = $4, timestamp = $5
            WHERE id = $6`
	cmdTag, err := r.db.Exec(ctx, sql, p.ProductName, p.Details, p.Image, p.Tags, p.Timestamp, p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update product: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// UpdateStatus applies a moderation decision together with its sort ranking
func (r *productRepository) UpdateStatus(ctx context.Context, id, status string, sort int) (int64, error) {
	sql := `UPDATE products SET status = $1, sort = $2 WHERE id = $3`
	cmdTag, err := r.db.Exec(ctx, sql, status, sort, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update product status: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// SetFeatured marks a product featured. There is no unfeature operation.
func (r *productRepository) SetFeatured(ctx context.Context, id string) (int64, error) {
	sql := `UPDATE products SET featured = TRUE WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return 0, fmt.Errorf("failed to set product featured: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// AddVote increments the vote count and records the voter in one statement.
// The ANY guard makes a duplicate vote affect zero rows, so two concurrent
// votes can never lose an update and a voter can never be counted twice.
func (r *productRepository) AddVote(ctx context.Context, id, voter string) (int64, error) {
	sql := `UPDATE products
            SET vote_count = vote_count + 1, voter = array_append(voter, $2)
            WHERE id = $1 AND NOT ($2 = ANY(voter))`
	cmdTag, err := r.db.Exec(ctx, sql, id, voter)
	if err != nil {
		return 0, fmt.Errorf("failed to add vote: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// SetReport overwrites the report field; last reporter wins
func (r *productRepository) SetReport(ctx context.Context, id, report string) (int64, error) {
	sql := `UPDATE products SET report = $2 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id, report)
	if err != nil {
		return 0, fmt.Errorf("failed to set product report: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// Delete removes a product document
func (r *productRepository) Delete(ctx context.Context, id string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// ListAccepted returns one page of the public accepted-product listing plus
// the total number of matches. The count is recomputed independently of the
// page query, so pagination metadata always reflects the full filtered set.
func (r *productRepository) ListAccepted(ctx context.Context, search string, page, limit int) ([]model.Product, int, error) {
	var where strings.Builder
	where.WriteString(` WHERE status = $1`)
	args := []any{model.StatusAccepted}
	if search != "" {
		// case-insensitive substring match against any tag
		where.WriteString(` AND EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE '%' || $2 || '%')`)
		args = append(args, search)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM products` + where.String()
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accepted products: %w", err)
	}

	offset := (page - 1) * limit
	pageSQL := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		productColumns, where.String(), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	products, err := r.queryProducts(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListFeatured returns the newest featured products
func (r *productRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE featured ORDER BY timestamp DESC LIMIT %d`,
		productColumns, featuredLimit)
	return r.queryProducts(ctx, sql)
}

// ListTrending returns voted-on products ordered by vote count
func (r *productRepository) ListTrending(ctx context.Context) ([]model.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE vote_count > 0 ORDER BY vote_count DESC LIMIT %d`,
		productColumns, trendingLimit)
	return r.queryProducts(ctx, sql)
}

// ListRising returns products above the rising vote threshold
func (r *productRepository) ListRising(ctx context.Context) ([]model.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE vote_count > %d ORDER BY vote_count DESC LIMIT %d`,
		productColumns, risingThreshold, risingLimit)
	return r.queryProducts(ctx, sql)
}

// ListAll returns every product for the moderation queue, highest ranking first
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products ORDER BY sort DESC`
	return r.queryProducts(ctx, sql)
}

// ListReported returns every product carrying a report flag
func (r *productRepository) ListReported(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE report IS NOT NULL`
	return r.queryProducts(ctx, sql)
}

// Count returns the total number of products
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
