package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const (
	tableVenues = "venues"

	// pgUniqueViolation код ошибки PostgreSQL при нарушении уникальности
	pgUniqueViolation = "23505"
)

var venueColumns = []string{
	"id",
	"name",
	"code",
	"building",
	"location",
	"capacity",
	"description",
	"image_url",
	"custodian_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From(tableVenues).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	return venue, nil
}

// List получает площадки с фильтрацией по зданию и ответственному
func (r *Repository) List(ctx context.Context, filter domain.VenuesFilter) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(venueColumns...).
		From(tableVenues).
		OrderBy("name ASC", "id ASC")

	if filter.Building != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"building": *filter.Building})
	}
	if filter.CustodianID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"custodian_id": *filter.CustodianID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// Update обновляет редактируемые поля площадки и возвращает сохраненную версию
func (r *Repository) Update(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableVenues).
		Set("name", venue.Name).
		Set("code", venue.Code).
		Set("building", venue.Building).
		Set("location", venue.Location).
		Set("capacity", venue.Capacity).
		Set("description", venue.Description).
		Set("image_url", venue.ImageURL).
		Set("custodian_id", venue.CustodianID).
		Where(squirrel.Eq{"id": venue.ID}).
		Suffix("RETURNING " + strings.Join(venueColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateCode
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// scanVenue сканирует одну строку в площадку
func scanVenue(row interface{ Scan(dest ...interface{}) error }) (*domain.Venue, error) {
	var (
		venue                domain.Venue
		custodianID          sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Code,
		&venue.Building,
		&venue.Location,
		&venue.Capacity,
		&venue.Description,
		&venue.ImageURL,
		&custodianID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if custodianID.Valid {
		id := custodianID.Int64
		venue.CustodianID = &id
	}
	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
