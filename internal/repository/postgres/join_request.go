package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

type joinRequestRepository struct {
	db      *sql.DB
	localTZ string
}

// NewJoinRequestRepository creates the join request repository. localTZ is
// the IANA timezone name used to compare carpool departures against NOW()
// for the pending-request counter.
func NewJoinRequestRepository(db *sql.DB, localTZ string) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db, localTZ: localTZ}
}

const joinRequestColumns = `id, carpool_id, user_id, status, message, viewed_by_requester, created_at, updated_at`

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	req, err := scanJoinRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *joinRequestRepository) GetByCarpoolAndUser(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE carpool_id = $1 AND user_id = $2`
	req, err := scanJoinRequest(r.db.QueryRowContext(ctx, query, carpoolID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *joinRequestRepository) CreateOrRecycle(ctx context.Context, req *domain.JoinRequest) error {
	// One row per (carpool, user): a rejected or removed row is recycled back
	// to pending with a fresh message and timestamp. The status guard on the
	// DO UPDATE arm means a pending or approved row is left alone, in which
	// case no row comes back and the caller gets a conflict.
	query := `INSERT INTO join_requests (carpool_id, user_id, message, status, viewed_by_requester)
	          VALUES ($1, $2, $3, 'pending', TRUE)
	          ON CONFLICT (carpool_id, user_id) DO UPDATE
	          SET message = EXCLUDED.message, status = 'pending', viewed_by_requester = TRUE, updated_at = NOW()
	          WHERE join_requests.status IN ('rejected', 'removed')
	          RETURNING ` + joinRequestColumns
	updated, err := scanJoinRequest(r.db.QueryRowContext(ctx, query, req.CarpoolID, req.UserID, nullable(req.Message)))
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetByCarpoolAndUser(ctx, req.CarpoolID, req.UserID)
		if getErr != nil {
			return getErr
		}
		return domain.NewAlreadyRequestedError(existing.Status)
	}
	if err != nil {
		return err
	}
	*req = *updated
	return nil
}

func (r *joinRequestRepository) ListByCarpool(ctx context.Context, carpoolID int32) ([]domain.JoinRequestView, error) {
	query := `SELECT jr.id, jr.carpool_id, jr.user_id, jr.status, jr.message, jr.viewed_by_requester,
	                 jr.created_at, jr.updated_at, u.display_name, u.sso_id, u.email
	          FROM join_requests jr
	          JOIN users u ON jr.user_id = u.id
	          WHERE jr.carpool_id = $1
	          ORDER BY jr.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, carpoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.JoinRequestView
	for rows.Next() {
		var view domain.JoinRequestView
		var message sql.NullString
		if err := rows.Scan(
			&view.ID, &view.CarpoolID, &view.UserID, &view.Status, &message, &view.ViewedByRequester,
			&view.CreatedAt, &view.UpdatedAt, &view.RequesterName, &view.RequesterSSOID, &view.RequesterEmail,
		); err != nil {
			return nil, err
		}
		view.Message = message.String
		views = append(views, view)
	}
	return views, rows.Err()
}

// Approve is the capacity-critical transition. Everything happens inside one
// transaction: the carpool's counters are read under FOR UPDATE so a racing
// approval on the same carpool serializes behind this one and re-evaluates
// fresh state, and the request's status is re-checked under the same lock
// scope before any write. A full carpool or a no-longer-pending request rolls
// back and surfaces as a conflict with the stored state untouched.
func (r *joinRequestRepository) Approve(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback()

	var carpoolID, capacity, current int32
	var status domain.JoinRequestStatus
	err = tx.QueryRowContext(ctx,
		`SELECT c.id, c.capacity, c.current_passengers, jr.status
		 FROM join_requests jr
		 JOIN carpools c ON jr.carpool_id = c.id
		 WHERE jr.id = $1
		 FOR UPDATE OF c, jr`, requestID).
		Scan(&carpoolID, &capacity, &current, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextStatus(status, domain.JoinActionApprove); err != nil {
		return nil, err
	}
	if current >= capacity {
		return nil, domain.NewCarpoolFullError()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE carpools SET current_passengers = current_passengers + 1, updated_at = NOW() WHERE id = $1`,
		carpoolID); err != nil {
		return nil, err
	}

	req, err := scanJoinRequest(tx.QueryRowContext(ctx,
		`UPDATE join_requests
		 SET status = 'approved', viewed_by_requester = FALSE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+joinRequestColumns, requestID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}
	return req, nil
}

func (r *joinRequestRepository) Reject(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rejection transaction: %w", err)
	}
	defer tx.Rollback()

	var status domain.JoinRequestStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM join_requests WHERE id = $1 FOR UPDATE`, requestID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextStatus(status, domain.JoinActionReject); err != nil {
		return nil, err
	}

	req, err := scanJoinRequest(tx.QueryRowContext(ctx,
		`UPDATE join_requests
		 SET status = 'rejected', viewed_by_requester = FALSE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+joinRequestColumns, requestID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rejection: %w", err)
	}
	return req, nil
}

// Remove mirrors Approve: carpool and request rows are locked together, the
// request must still be approved, and the counter decrement (floored at zero)
// commits atomically with the status change.
func (r *joinRequestRepository) Remove(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin removal transaction: %w", err)
	}
	defer tx.Rollback()

	var requestID int32
	var status domain.JoinRequestStatus
	err = tx.QueryRowContext(ctx,
		`SELECT jr.id, jr.status
		 FROM join_requests jr
		 JOIN carpools c ON jr.carpool_id = c.id
		 WHERE jr.carpool_id = $1 AND jr.user_id = $2
		 FOR UPDATE OF c, jr`, carpoolID, userID).
		Scan(&requestID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextStatus(status, domain.JoinActionRemove); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE carpools SET current_passengers = GREATEST(current_passengers - 1, 0), updated_at = NOW() WHERE id = $1`,
		carpoolID); err != nil {
		return nil, err
	}

	req, err := scanJoinRequest(tx.QueryRowContext(ctx,
		`UPDATE join_requests
		 SET status = 'removed', viewed_by_requester = FALSE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+joinRequestColumns, requestID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit removal: %w", err)
	}
	return req, nil
}

func (r *joinRequestRepository) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	var count int32
	// Departures are civil times; compare in the configured local timezone.
	query := `SELECT COUNT(jr.id)::int
	          FROM join_requests jr
	          JOIN carpools c ON jr.carpool_id = c.id
	          WHERE c.created_by = $1
	            AND jr.status = 'pending'
	            AND ((c.departure_date + c.departure_time) AT TIME ZONE $2) >= NOW()`
	err := r.db.QueryRowContext(ctx, query, ownerID, r.localTZ).Scan(&count)
	return count, err
}

func (r *joinRequestRepository) ListUnseenByUser(ctx context.Context, userID int32) ([]domain.StatusUpdate, error) {
	query := `SELECT jr.id, jr.status, c.title
	          FROM join_requests jr
	          JOIN carpools c ON jr.carpool_id = c.id
	          WHERE jr.user_id = $1 AND jr.viewed_by_requester = FALSE
	          ORDER BY jr.updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []domain.StatusUpdate
	for rows.Next() {
		var u domain.StatusUpdate
		if err := rows.Scan(&u.RequestID, &u.Status, &u.CarpoolTitle); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

func (r *joinRequestRepository) MarkViewedByUser(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE join_requests SET viewed_by_requester = TRUE WHERE user_id = $1 AND viewed_by_requester = FALSE`,
		userID)
	return err
}

func scanJoinRequest(row *sql.Row) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	var message sql.NullString
	err := row.Scan(&req.ID, &req.CarpoolID, &req.UserID, &req.Status, &message,
		&req.ViewedByRequester, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.Message = message.String
	return req, nil
}
