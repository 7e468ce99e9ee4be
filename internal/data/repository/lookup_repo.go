package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Genre, error)
}

type AudienceTypeRepository interface {
	FindAll(ctx context.Context) ([]*entity.AudienceType, error)
}

type PaymentMethodRepository interface {
	FindAll(ctx context.Context) ([]*entity.PaymentMethod, error)
	FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)
}

// lookupTable reads one of the static reference tables (id + label column).
type lookupTable struct {
	db     database.Querier
	log    *zap.Logger
	table  string
	column string
}

func newLookupTable(db database.Querier, log *zap.Logger, table, column string) lookupTable {
	return lookupTable{
		db:     db,
		log:    log.With(zap.String("repository", table)),
		table:  table,
		column: column,
	}
}

func (t lookupTable) findAll(ctx context.Context) ([]entity.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY id`, t.column, t.table)

	rows, err := t.db.Query(ctx, query)
	if err != nil {
		t.log.Error("Failed to list lookup rows", zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	var items []entity.Lookup
	for rows.Next() {
		var item entity.Lookup
		if err := rows.Scan(&item.ID, &item.Label); err != nil {
			t.log.Error("Failed to scan lookup row", zap.Error(err))
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (t lookupTable) findByID(ctx context.Context, id int64) (*entity.Lookup, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, t.column, t.table)

	var item entity.Lookup
	if err := t.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Label); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		t.log.Error("Failed to find lookup row", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("find %s %d: %w", t.table, id, err)
	}

	return &item, nil
}

type genreRepository struct{ lookupTable }

func NewGenreRepository(db database.Querier, log *zap.Logger) GenreRepository {
	return &genreRepository{newLookupTable(db, log, "genres", "name")}
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	items, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}

	genres := make([]*entity.Genre, len(items))
	for i := range items {
		g := entity.Genre(items[i])
		genres[i] = &g
	}
	return genres, nil
}

type audienceTypeRepository struct{ lookupTable }

func NewAudienceTypeRepository(db database.Querier, log *zap.Logger) AudienceTypeRepository {
	return &audienceTypeRepository{newLookupTable(db, log, "audience_types", "description")}
}

func (r *audienceTypeRepository) FindAll(ctx context.Context) ([]*entity.AudienceType, error) {
	items, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}

	types := make([]*entity.AudienceType, len(items))
	for i := range items {
		a := entity.AudienceType(items[i])
		types[i] = &a
	}
	return types, nil
}

type paymentMethodRepository struct{ lookupTable }

func NewPaymentMethodRepository(db database.Querier, log *zap.Logger) PaymentMethodRepository {
	return &paymentMethodRepository{newLookupTable(db, log, "payment_methods", "description")}
}

func (r *paymentMethodRepository) FindAll(ctx context.Context) ([]*entity.PaymentMethod, error) {
	items, err := r.findAll(ctx)
	if err != nil {
		return nil, err
	}

	methods := make([]*entity.PaymentMethod, len(items))
	for i := range items {
		m := entity.PaymentMethod(items[i])
		methods[i] = &m
	}
	return methods, nil
}

func (r *paymentMethodRepository) FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	item, err := r.findByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	m := entity.PaymentMethod(*item)
	return &m, nil
}
