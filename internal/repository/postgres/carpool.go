package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"

	"github.com/lib/pq"
)

type carpoolRepository struct {
	db *sql.DB
}

func NewCarpoolRepository(db *sql.DB) repository.CarpoolRepository {
	return &carpoolRepository{db: db}
}

const carpoolColumns = `c.id, c.created_by, c.carpool_type, c.title, c.description,
	c.event_name, c.pickup_details, c.dropoff_details,
	c.departure_date, to_char(c.departure_time, 'HH24:MI'),
	c.capacity, c.current_passengers, c.tags, c.contact, c.created_at, c.updated_at`

func (r *carpoolRepository) Create(ctx context.Context, carpool *domain.Carpool) error {
	query := `INSERT INTO carpools
	          (created_by, carpool_type, title, description, event_name, pickup_details, dropoff_details,
	           departure_date, departure_time, capacity, tags, contact)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		carpool.CreatedBy, carpool.Type, carpool.Title, carpool.Description,
		nullable(carpool.EventName), nullable(carpool.PickupDetails), nullable(carpool.DropoffDetails),
		carpool.DepartureDate, carpool.DepartureTime, carpool.Capacity,
		pq.Array(carpool.TagIDs), carpool.Contact,
	).Scan(&carpool.ID, &carpool.CreatedAt, &carpool.UpdatedAt)
}

func (r *carpoolRepository) GetByID(ctx context.Context, id int32) (*domain.Carpool, error) {
	query := `SELECT ` + carpoolColumns + ` FROM carpools c WHERE c.id = $1`
	carpool, err := scanCarpool(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return carpool, nil
}

func (r *carpoolRepository) GetView(ctx context.Context, id int32) (*domain.CarpoolView, error) {
	query := `SELECT ` + carpoolColumns + `, u.display_name, u.sso_id, u.email
	          FROM carpools c
	          LEFT JOIN users u ON c.created_by = u.id
	          WHERE c.id = $1`
	view := &domain.CarpoolView{}
	var eventName, pickup, dropoff sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.CreatedBy, &view.Type, &view.Title, &view.Description,
		&eventName, &pickup, &dropoff,
		&view.DepartureDate, &view.DepartureTime,
		&view.Capacity, &view.CurrentPassengers, pq.Array(&view.TagIDs), &view.Contact,
		&view.CreatedAt, &view.UpdatedAt,
		&view.CreatorName, &view.CreatorSSOID, &view.CreatorEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	view.EventName = eventName.String
	view.PickupDetails = pickup.String
	view.DropoffDetails = dropoff.String
	if err := r.attachTags(ctx, []*domain.CarpoolView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *carpoolRepository) Update(ctx context.Context, carpool *domain.Carpool) error {
	// Field edits only. The seat counter is owned by the approval/removal
	// transactions and is never written here.
	query := `UPDATE carpools
	          SET carpool_type = $1, title = $2, description = $3, event_name = $4,
	              pickup_details = $5, dropoff_details = $6, departure_date = $7,
	              departure_time = $8, capacity = $9, tags = $10, contact = $11, updated_at = NOW()
	          WHERE id = $12
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		carpool.Type, carpool.Title, carpool.Description,
		nullable(carpool.EventName), nullable(carpool.PickupDetails), nullable(carpool.DropoffDetails),
		carpool.DepartureDate, carpool.DepartureTime, carpool.Capacity,
		pq.Array(carpool.TagIDs), carpool.Contact, carpool.ID,
	).Scan(&carpool.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *carpoolRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM carpools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// sortColumns is the allow-list for listing sort keys. A sort key outside
// this list falls back to the default departure_date ascending, so free-text
// sort parameters can never reach the SQL string.
var sortColumns = map[string]string{
	domain.SortByDepartureDate: "c.departure_date",
	domain.SortByCreatedAt:     "c.created_at",
	domain.SortByCapacity:      "c.capacity",
}

func (r *carpoolRepository) List(ctx context.Context, filter domain.CarpoolFilter) ([]domain.CarpoolView, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("c.carpool_type = %s", arg(filter.Type)))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf(`(
			c.title ILIKE %[1]s OR
			c.description ILIKE %[1]s OR
			c.event_name ILIKE %[1]s OR
			c.pickup_details ILIKE %[1]s OR
			c.dropoff_details ILIKE %[1]s OR
			EXISTS (SELECT 1 FROM carpool_tags ct WHERE ct.id = ANY(c.tags) AND ct.name ILIKE %[1]s)
		)`, p))
	}
	if len(filter.TagIDs) > 0 {
		// Containment: the carpool must carry every requested tag.
		conditions = append(conditions, fmt.Sprintf("c.tags @> %s", arg(pq.Array(filter.TagIDs))))
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("c.departure_date >= %s", arg(filter.DateFrom)))
	}
	if filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("c.departure_date <= %s", arg(filter.DateTo)))
	}
	if filter.AvailableOnly {
		conditions = append(conditions, "c.current_passengers < c.capacity")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	direction := "ASC"
	if !ok {
		sortColumn = sortColumns[domain.SortByDepartureDate]
	} else if filter.SortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + carpoolColumns + `, u.display_name, u.sso_id
	          FROM carpools c
	          LEFT JOIN users u ON c.created_by = u.id` + where +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST", sortColumn, direction)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.CarpoolView
	var refs []*domain.CarpoolView
	for rows.Next() {
		var view domain.CarpoolView
		var eventName, pickup, dropoff sql.NullString
		if err := rows.Scan(
			&view.ID, &view.CreatedBy, &view.Type, &view.Title, &view.Description,
			&eventName, &pickup, &dropoff,
			&view.DepartureDate, &view.DepartureTime,
			&view.Capacity, &view.CurrentPassengers, pq.Array(&view.TagIDs), &view.Contact,
			&view.CreatedAt, &view.UpdatedAt,
			&view.CreatorName, &view.CreatorSSOID,
		); err != nil {
			return nil, err
		}
		view.EventName = eventName.String
		view.PickupDetails = pickup.String
		view.DropoffDetails = dropoff.String
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range views {
		refs = append(refs, &views[i])
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *carpoolRepository) ListTrips(ctx context.Context, userID int32) ([]domain.TripView, error) {
	query := `SELECT ` + carpoolColumns + `, u.display_name, u.sso_id,
	            CASE WHEN c.created_by = $1 THEN 'owner' ELSE jr.status END AS role
	          FROM carpools c
	          LEFT JOIN users u ON c.created_by = u.id
	          LEFT JOIN join_requests jr ON jr.carpool_id = c.id AND jr.user_id = $1
	          WHERE c.created_by = $1 OR jr.id IS NOT NULL
	          ORDER BY c.departure_date DESC, c.departure_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.TripView
	for rows.Next() {
		var trip domain.TripView
		var eventName, pickup, dropoff sql.NullString
		if err := rows.Scan(
			&trip.ID, &trip.CreatedBy, &trip.Type, &trip.Title, &trip.Description,
			&eventName, &pickup, &dropoff,
			&trip.DepartureDate, &trip.DepartureTime,
			&trip.Capacity, &trip.CurrentPassengers, pq.Array(&trip.TagIDs), &trip.Contact,
			&trip.CreatedAt, &trip.UpdatedAt,
			&trip.CreatorName, &trip.CreatorSSOID,
			&trip.Role,
		); err != nil {
			return nil, err
		}
		trip.EventName = eventName.String
		trip.PickupDetails = pickup.String
		trip.DropoffDetails = dropoff.String
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var refs []*domain.CarpoolView
	for i := range trips {
		refs = append(refs, &trips[i].CarpoolView)
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, err
	}
	return trips, nil
}

// attachTags resolves tag IDs to tag objects for a batch of views with a
// single query.
func (r *carpoolRepository) attachTags(ctx context.Context, views []*domain.CarpoolView) error {
	idSet := map[int32]struct{}{}
	for _, v := range views {
		for _, id := range v.TagIDs {
			idSet[id] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]int32, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM carpool_tags WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[int32]domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return err
		}
		byID[tag.ID] = tag
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, v := range views {
		for _, id := range v.TagIDs {
			if tag, ok := byID[id]; ok {
				v.Tags = append(v.Tags, tag)
			}
		}
	}
	return nil
}

func scanCarpool(row *sql.Row) (*domain.Carpool, error) {
	carpool := &domain.Carpool{}
	var eventName, pickup, dropoff sql.NullString
	err := row.Scan(
		&carpool.ID, &carpool.CreatedBy, &carpool.Type, &carpool.Title, &carpool.Description,
		&eventName, &pickup, &dropoff,
		&carpool.DepartureDate, &carpool.DepartureTime,
		&carpool.Capacity, &carpool.CurrentPassengers, pq.Array(&carpool.TagIDs), &carpool.Contact,
		&carpool.CreatedAt, &carpool.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	carpool.EventName = eventName.String
	carpool.PickupDetails = pickup.String
	carpool.DropoffDetails = dropoff.String
	return carpool, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
