package calendar

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) CreateEvent(ctx context.Context, event AcademicEvent) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO academic_events (id, name, from_date, to_date, department, created_by)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, event.ID, event.Name, event.FromDate, event.ToDate, event.Department, event.CreatedBy)
	return err
}

func (s *PGStore) EventsByDepartment(ctx context.Context, department string) ([]AcademicEvent, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, from_date, to_date, department, created_by
    FROM academic_events
    WHERE department = $1
    ORDER BY created_at
  `, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []AcademicEvent
	for rows.Next() {
		var e AcademicEvent
		if err := rows.Scan(&e.ID, &e.Name, &e.FromDate, &e.ToDate, &e.Department, &e.CreatedBy); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
