package workflow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

const requestColumns = `
  id, requester_id, requester_name, department, section, kind,
  from_date, to_date, reason, status, advisor_decision, hod_decision,
  rejected_at_creation, rejection_reason, applied_at
`

func (s *PGStore) CreateRequest(ctx context.Context, request LeaveRequest) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_requests (`+requestColumns+`)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
  `, request.ID, request.RequesterID, request.RequesterName, request.Department, request.Section,
		request.Kind, request.FromDate, request.ToDate, request.Reason, request.Status,
		request.AdvisorDecision, request.HODDecision, request.RejectedAtCreation,
		nullable(request.RejectionReason), request.AppliedAt)
	return err
}

func (s *PGStore) RequestByID(ctx context.Context, id string) (LeaveRequest, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+requestColumns+` FROM leave_requests WHERE id = $1`, id)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	return request, err
}

func (s *PGStore) ApplyDecision(ctx context.Context, request LeaveRequest, expect Status) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET advisor_decision = $1, hod_decision = $2, status = $3, rejection_reason = $4
    WHERE id = $5 AND status = $6
  `, request.AdvisorDecision, request.HODDecision, request.Status,
		nullable(request.RejectionReason), request.ID, expect)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *PGStore) ListRequests(ctx context.Context) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+requestColumns+` FROM leave_requests ORDER BY applied_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var out LeaveRequest
	var rejectionReason *string
	err := row.Scan(&out.ID, &out.RequesterID, &out.RequesterName, &out.Department, &out.Section,
		&out.Kind, &out.FromDate, &out.ToDate, &out.Reason, &out.Status,
		&out.AdvisorDecision, &out.HODDecision, &out.RejectedAtCreation, &rejectionReason, &out.AppliedAt)
	if err != nil {
		return LeaveRequest{}, err
	}
	if rejectionReason != nil {
		out.RejectionReason = *rejectionReason
	}
	return out, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
