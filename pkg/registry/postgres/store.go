// Package postgres provides PostgreSQL storage for DMS backend
// registrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/registry"
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// registrationColumns lists columns returned by registration SELECTs.
var registrationColumns = []string{
	"resource_type", "base_url", "route", "allow_storage",
	"api_key", "staging_location_supported", "supports_copy",
}

// Store implements registry.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a registration store on an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns every stored backend registration.
func (s *Store) List(ctx context.Context) ([]registry.Registration, error) {
	query, args, err := psq.Select(registrationColumns...).
		From("dms_registrations").
		OrderBy("resource_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building registrations query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dms registrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []registry.Registration
	for rows.Next() {
		var reg registry.Registration
		var apiKey sql.NullString
		err := rows.Scan(
			&reg.ResourceType,
			&reg.Properties.BaseURL,
			&reg.Properties.Route,
			&reg.Properties.AllowStorage,
			&apiKey,
			&reg.Properties.StagingLocationSupported,
			&reg.Properties.SupportsCopy,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning dms registration: %w", err)
		}
		reg.Properties.APIKey = apiKey.String
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading dms registrations: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces a backend registration.
func (s *Store) Upsert(ctx context.Context, reg registry.Registration) error {
	query, args, err := psq.Insert("dms_registrations").
		Columns(registrationColumns...).
		Values(
			reg.ResourceType,
			reg.Properties.BaseURL,
			reg.Properties.Route,
			reg.Properties.AllowStorage,
			nullable(reg.Properties.APIKey),
			reg.Properties.StagingLocationSupported,
			reg.Properties.SupportsCopy,
		).
		Suffix(`ON CONFLICT (resource_type) DO UPDATE SET
			base_url = EXCLUDED.base_url,
			route = EXCLUDED.route,
			allow_storage = EXCLUDED.allow_storage,
			api_key = EXCLUDED.api_key,
			staging_location_supported = EXCLUDED.staging_location_supported,
			supports_copy = EXCLUDED.supports_copy`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building registration upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting dms registration %s: %w", reg.ResourceType, err)
	}
	return nil
}

// Delete removes a backend registration.
func (s *Store) Delete(ctx context.Context, resourceType string) error {
	query, args, err := psq.Delete("dms_registrations").
		Where(sq.Eq{"resource_type": resourceType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building registration delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting dms registration %s: %w", resourceType, err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Verify interface compliance.
var _ registry.Store = (*Store)(nil)
