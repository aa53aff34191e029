package jobs

import (
	"context"

	"campuspool-backend/internal/logger"
	"campuspool-backend/internal/service"
)

// SendPendingDigests emails each owner a digest of pending join requests on
// their carpools departing within the next 48 hours, so requests do not sit
// undecided until departure.
func (jr *JobRunner) SendPendingDigests() {
	jr.runWithRecovery("SendPendingDigests", func() {
		ctx := context.Background()

		query := `
			SELECT o.email, c.title, u.display_name, to_char(c.departure_date, 'YYYY-MM-DD')
			FROM join_requests jr
			JOIN carpools c ON jr.carpool_id = c.id
			JOIN users o ON c.created_by = o.id
			JOIN users u ON jr.user_id = u.id
			WHERE jr.status = 'pending'
			  AND ((c.departure_date + c.departure_time) AT TIME ZONE $1) >= NOW()
			  AND ((c.departure_date + c.departure_time) AT TIME ZONE $1) < NOW() + INTERVAL '48 hours'
			ORDER BY o.email, c.departure_date
		`

		rows, err := jr.db.QueryContext(ctx, query, jr.config.App.Timezone)
		if err != nil {
			logger.Error("Failed to query pending join requests", "error", err)
			return
		}
		defer rows.Close()

		digests := map[string][]service.PendingDigestItem{}
		for rows.Next() {
			var ownerEmail string
			var item service.PendingDigestItem
			if err := rows.Scan(&ownerEmail, &item.CarpoolTitle, &item.RequesterName, &item.DepartureDate); err != nil {
				logger.Error("Failed to scan pending join request", "error", err)
				continue
			}
			digests[ownerEmail] = append(digests[ownerEmail], item)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed to read pending join requests", "error", err)
			return
		}

		sent := 0
		for ownerEmail, items := range digests {
			if err := jr.emailSvc.SendPendingDigest(ctx, ownerEmail, items); err != nil {
				logger.Warn("Failed to send pending digest", "owner_email", ownerEmail, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Pending digests sent", "owners", sent, "total_pending", len(digests))
	})
}
