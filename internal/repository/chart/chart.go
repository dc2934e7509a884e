package chartRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/admin/astro-services/natal-api/internal/ports/persistence"
	ports "github.com/admin/astro-services/natal-api/internal/ports/repository"
	"github.com/google/uuid"
)

type chartColumns struct {
	TableName    string
	ID           string
	OwnerID      string
	FullName     string
	DateOfBirth  string
	TimeOfBirth  string
	PlaceOfBirth string
	Gender       string
	Rasi         string
	Nakshatra    string
	Ascendant    string
	RasiChart    string
	NavamsaChart string
	RawPayload   string
	RasiSVG      string
	NavamsaSVG   string
	CreatedAt    string
	UpdatedAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New создаёт новый репозиторий для работы с записями натальных карт
func New(db persistence.Persistence, log *slog.Logger) ports.IChartRepo {
	cols := chartColumns{
		TableName:    "chart_records",
		ID:           "id",
		OwnerID:      "owner_id",
		FullName:     "full_name",
		DateOfBirth:  "date_of_birth",
		TimeOfBirth:  "time_of_birth",
		PlaceOfBirth: "place_of_birth",
		Gender:       "gender",
		Rasi:         "rasi",
		Nakshatra:    "nakshatra",
		Ascendant:    "ascendant",
		RasiChart:    "rasi_chart",
		NavamsaChart: "navamsa_chart",
		RawPayload:   "raw_payload",
		RasiSVG:      "rasi_chart_svg",
		NavamsaSVG:   "navamsa_chart_svg",
		CreatedAt:    "created_at",
		UpdatedAt:    "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// chartRow промежуточное представление строки: JSONB колонки как []byte
type chartRow struct {
	ID           uuid.UUID      `db:"id"`
	OwnerID      uuid.UUID      `db:"owner_id"`
	FullName     string         `db:"full_name"`
	DateOfBirth  time.Time      `db:"date_of_birth"`
	TimeOfBirth  string         `db:"time_of_birth"`
	PlaceOfBirth string         `db:"place_of_birth"`
	Gender       string         `db:"gender"`
	Rasi         string         `db:"rasi"`
	Nakshatra    string         `db:"nakshatra"`
	Ascendant    string         `db:"ascendant"`
	RasiChart    []byte         `db:"rasi_chart"`
	NavamsaChart []byte         `db:"navamsa_chart"`
	RawPayload   []byte         `db:"raw_payload"`
	RasiSVG      sql.NullString `db:"rasi_chart_svg"`
	NavamsaSVG   sql.NullString `db:"navamsa_chart_svg"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// allColumns возвращает строку со всеми колонками (17 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.OwnerID,
		r.columns.FullName,
		r.columns.DateOfBirth,
		r.columns.TimeOfBirth,
		r.columns.PlaceOfBirth,
		r.columns.Gender,
		r.columns.Rasi,
		r.columns.Nakshatra,
		r.columns.Ascendant,
		r.columns.RasiChart,
		r.columns.NavamsaChart,
		r.columns.RawPayload,
		r.columns.RasiSVG,
		r.columns.NavamsaSVG,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

func toRow(record *domain.ChartRecord) (*chartRow, error) {
	rasiChart, err := json.Marshal(record.RasiChart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rasi chart: %w", err)
	}
	navamsaChart, err := json.Marshal(record.NavamsaChart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal navamsa chart: %w", err)
	}
	rawPayload, err := json.Marshal(record.RawPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw payload: %w", err)
	}

	row := &chartRow{
		ID:           record.ID,
		OwnerID:      record.OwnerID,
		FullName:     record.FullName,
		DateOfBirth:  record.DateOfBirth,
		TimeOfBirth:  record.TimeOfBirth,
		PlaceOfBirth: record.PlaceOfBirth,
		Gender:       string(record.Gender),
		Rasi:         record.Rasi,
		Nakshatra:    record.Nakshatra,
		Ascendant:    record.Ascendant,
		RasiChart:    rasiChart,
		NavamsaChart: navamsaChart,
		RawPayload:   rawPayload,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
	if record.RasiSVG != nil {
		row.RasiSVG = sql.NullString{String: *record.RasiSVG, Valid: true}
	}
	if record.NavamsaSVG != nil {
		row.NavamsaSVG = sql.NullString{String: *record.NavamsaSVG, Valid: true}
	}
	return row, nil
}

func (row *chartRow) toDomain() (*domain.ChartRecord, error) {
	record := &domain.ChartRecord{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		FullName:     row.FullName,
		DateOfBirth:  row.DateOfBirth,
		TimeOfBirth:  row.TimeOfBirth,
		PlaceOfBirth: row.PlaceOfBirth,
		Gender:       domain.Gender(row.Gender),
		Rasi:         row.Rasi,
		Nakshatra:    row.Nakshatra,
		Ascendant:    row.Ascendant,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	if err := json.Unmarshal(row.RasiChart, &record.RasiChart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rasi chart: %w", err)
	}
	if err := json.Unmarshal(row.NavamsaChart, &record.NavamsaChart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal navamsa chart: %w", err)
	}
	if err := json.Unmarshal(row.RawPayload, &record.RawPayload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw payload: %w", err)
	}

	if row.RasiSVG.Valid {
		svg := row.RasiSVG.String
		record.RasiSVG = &svg
	}
	if row.NavamsaSVG.Valid {
		svg := row.NavamsaSVG.String
		record.NavamsaSVG = &svg
	}

	return record, nil
}

// Create сохраняет новую запись карты одним INSERT'ом
func (r *Repository) Create(ctx context.Context, record *domain.ChartRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		r.columns.TableName,
		r.allColumns())
	err = r.db.Exec(ctx, query,
		row.ID,
		row.OwnerID,
		row.FullName,
		row.DateOfBirth,
		row.TimeOfBirth,
		row.PlaceOfBirth,
		row.Gender,
		row.Rasi,
		row.Nakshatra,
		row.Ascendant,
		row.RasiChart,
		row.NavamsaChart,
		row.RawPayload,
		row.RasiSVG,
		row.NavamsaSVG,
		row.CreatedAt,
		row.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create chart record",
			"error", err,
			"chart_id", record.ID,
			"owner_id", record.OwnerID)
		return fmt.Errorf("failed to create chart record: %w", err)
	}
	r.Log.Debug("chart record created successfully",
		"chart_id", record.ID,
		"owner_id", record.OwnerID)
	return nil
}

// GetByID получает запись карты по идентификатору
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChartRecord, error) {
	var row chartRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChartNotFound
	}
	if err != nil {
		r.Log.Error("failed to get chart record",
			"error", err,
			"chart_id", id)
		return nil, fmt.Errorf("failed to get chart record: %w", err)
	}
	return row.toDomain()
}

// GetByOwner получает записи карт пользователя, новые первыми
func (r *Repository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ChartRecord, error) {
	var rows []chartRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.OwnerID,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &rows, query, ownerID)
	if err != nil {
		r.Log.Error("failed to list chart records",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list chart records: %w", err)
	}

	records := make([]*domain.ChartRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete удаляет запись карты пользователя
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.OwnerID)
	affected, err := r.db.ExecWithResult(ctx, query, id, ownerID)
	if err != nil {
		r.Log.Error("failed to delete chart record",
			"error", err,
			"chart_id", id,
			"owner_id", ownerID)
		return fmt.Errorf("failed to delete chart record: %w", err)
	}
	if affected == 0 {
		return domain.ErrChartNotFound
	}
	r.Log.Debug("chart record deleted",
		"chart_id", id,
		"owner_id", ownerID)
	return nil
}
