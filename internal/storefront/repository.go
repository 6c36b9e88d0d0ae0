package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogRepository define a leitura do catálogo. O core só lê produtos.
type CatalogRepository interface {
	// ListProducts devolve o catálogo na ordem de exibição
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct busca um produto pelo ID; ErrProductNotFound se não existir
	GetProduct(ctx context.Context, id string) (Product, error)
}

// InMemoryCatalogRepository serve uma lista fixa de produtos
type InMemoryCatalogRepository struct {
	products []Product
}

// NewInMemoryCatalogRepository cria o repositório a partir de uma lista fixa
func NewInMemoryCatalogRepository(products []Product) *InMemoryCatalogRepository {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &InMemoryCatalogRepository{products: cp}
}

func (r *InMemoryCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryCatalogRepository) GetProduct(ctx context.Context, id string) (Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// PostgresCatalogRepository lê a tabela products (populada pelo catalog-seed)
type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCatalogRepository cria uma nova instância de PostgresCatalogRepository
func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

const productColumns = `id, name, price::text, description, image, stock`

func (r *PostgresCatalogRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Description, &p.Image, &p.Stock); err != nil {
		return Product{}, err
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("product %s: invalid price %q: %w", p.ID, price, err)
	}
	p.Price = amount
	return p, nil
}
