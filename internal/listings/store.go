package listings

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS listings(
		id SERIAL PRIMARY KEY,
		city TEXT NOT NULL,
		address TEXT NOT NULL,
		postcode TEXT NOT NULL DEFAULT '',
		price INTEGER NOT NULL,
		bedrooms INTEGER NOT NULL,
		bathrooms INTEGER NOT NULL DEFAULT 0,
		property_url TEXT NOT NULL UNIQUE,
		image_url TEXT NOT NULL DEFAULT '',
		in_article4 BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed creating listings table: %w", err)
	}

	return nil
}

// SearchParams filters a listings search. Zero values mean
// "no constraint", except City which is required by the service.
type SearchParams struct {
	City        string
	MinBedrooms int
	MaxPrice    int
}

func (s *Store) Select(ctx context.Context, params SearchParams) ([]Listing, error) {
	query := `
		SELECT id, city, address, postcode, price, bedrooms, bathrooms,
			property_url, image_url, in_article4, created_at
		FROM listings
		WHERE LOWER(city) = $1`
	args := []any{strings.ToLower(params.City)}

	if params.MinBedrooms > 0 {
		args = append(args, params.MinBedrooms)
		query += fmt.Sprintf(" AND bedrooms >= $%d", len(args))
	}
	if params.MaxPrice > 0 {
		args = append(args, params.MaxPrice)
		query += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	query += " ORDER BY price DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed selecting listings: %w", err)
	}
	defer rows.Close()

	collection := []Listing{}
	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID,
			&l.City,
			&l.Address,
			&l.Postcode,
			&l.Price,
			&l.Bedrooms,
			&l.Bathrooms,
			&l.PropertyURL,
			&l.ImageURL,
			&l.InArticle4,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed scanning listing: %w", err)
		}

		collection = append(collection, l)
	}

	return collection, rows.Err()
}

func (s *Store) Insert(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings(city, address, postcode, price, bedrooms, bathrooms,
			property_url, image_url, in_article4, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (property_url) DO UPDATE
		SET price = $4, bedrooms = $5, bathrooms = $6, image_url = $8, in_article4 = $9
		RETURNING id`

	l.CreatedAt = time.Now().UTC()

	return s.DB.QueryRowContext(ctx, query,
		l.City,
		l.Address,
		l.Postcode,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.PropertyURL,
		l.ImageURL,
		l.InArticle4,
		l.CreatedAt,
	).Scan(&l.ID)
}
