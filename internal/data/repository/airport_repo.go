package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AirportRepository interface {
	FindAll(ctx context.Context) ([]*entity.Airport, error)
	FindByCode(ctx context.Context, code string) (*entity.Airport, error)
}

type airportRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewAirportRepository(db database.DBTX, log *zap.Logger) AirportRepository {
	return &airportRepository{
		db:  db,
		log: log.With(zap.String("repository", "airport")),
	}
}

// FindAll returns every airport ordered by city, then name.
func (r *airportRepository) FindAll(ctx context.Context) ([]*entity.Airport, error) {
	query := `
		SELECT airport_code, name, city, country
		FROM airports
		ORDER BY city, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list airports", zap.Error(err))
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	airports := []*entity.Airport{}
	for rows.Next() {
		var a entity.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.City, &a.Country); err != nil {
			r.log.Error("Failed to scan airport row", zap.Error(err))
			return nil, fmt.Errorf("scan airport row: %w", err)
		}
		airports = append(airports, &a)
	}

	return airports, rows.Err()
}

func (r *airportRepository) FindByCode(ctx context.Context, code string) (*entity.Airport, error) {
	query := `
		SELECT airport_code, name, city, country
		FROM airports
		WHERE airport_code = $1
	`

	var a entity.Airport
	err := r.db.QueryRow(ctx, query, code).Scan(&a.Code, &a.Name, &a.City, &a.Country)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airport", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find airport %s: %w", code, err)
	}

	return &a, nil
}
