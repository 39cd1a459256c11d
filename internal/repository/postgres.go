package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/storm_route_system/internal/models"
)

// PostgresIncidentStore - постоянное хранилище инцидентов на PostgreSQL/PostGIS
type PostgresIncidentStore struct {
	db *pgxpool.Pool
}

func NewPostgresIncidentStore(db *pgxpool.Pool) *PostgresIncidentStore {
	return &PostgresIncidentStore{db: db}
}

// Create создает новую запись об инциденте в бд, id и created_at назначает бд
func (s *PostgresIncidentStore) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (type, description, location, reported_by)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5) RETURNING id, created_at;
	`
	err := s.db.QueryRow(ctx, query,
		string(incident.Type),
		incident.Description,
		incident.Lng,
		incident.Lat,
		incident.ReportedBy,
	).Scan(&incident.ID, &incident.Timestamp)
	if err != nil {
		return newStorageError("create incident", err)
	}
	return nil
}

// ListAll возвращает все инциденты в порядке создания
func (s *PostgresIncidentStore) ListAll(ctx context.Context) ([]*models.Incident, error) {
	query := `
		SELECT
			id,
			ST_Y(location::geometry) as lat,
			ST_X(location::geometry) as lng,
			type,
			description,
			created_at,
			reported_by
		FROM incidents
		ORDER BY created_at ASC;
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, newStorageError("list incidents", err)
	}
	defer rows.Close()

	return scanIncidentRows(rows)
}

// QueryHazardsNear возвращает препятствия внутри границ не старше maxAge.
// Предикат точный, но результат всё равно дедуплицируется по контракту хранилища.
func (s *PostgresIncidentStore) QueryHazardsNear(ctx context.Context, bounds models.SpatialBounds, maxAge time.Duration) ([]*models.Incident, error) {
	query := `
		SELECT
			id,
			ST_Y(location::geometry) as lat,
			ST_X(location::geometry) as lng,
			type,
			description,
			created_at,
			reported_by
		FROM incidents
		WHERE
			type = ANY($1)
			AND ST_Y(location::geometry) BETWEEN $2 AND $3
			AND ST_X(location::geometry) BETWEEN $4 AND $5
			AND created_at >= $6
		ORDER BY created_at ASC;
	`
	hazardTypes := []string{string(models.TypeDebrisRoad), string(models.TypeDownedPowerline)}
	cutoff := time.Now().Add(-maxAge)

	rows, err := s.db.Query(ctx, query, hazardTypes, bounds.South, bounds.North, bounds.West, bounds.East, cutoff)
	if err != nil {
		return nil, newStorageError("query hazards", err)
	}
	defer rows.Close()

	incidents, err := scanIncidentRows(rows)
	if err != nil {
		return nil, err
	}
	return dedupeByNewest(incidents), nil
}

// DeleteOlderThan удаляет инциденты старше cutoff
func (s *PostgresIncidentStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM incidents WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, newStorageError("delete old incidents", err)
	}
	return int(cmdTag.RowsAffected()), nil
}

type incidentRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanIncidentRows(rows incidentRows) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		var incidentType string
		err := rows.Scan(
			&incident.ID,
			&incident.Lat,
			&incident.Lng,
			&incidentType,
			&incident.Description,
			&incident.Timestamp,
			&incident.ReportedBy,
		)
		if err != nil {
			return nil, newStorageError("scan incident row", err)
		}
		incident.Type = models.IncidentType(incidentType)
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("iterate incident rows", err)
	}
	return incidents, nil
}
