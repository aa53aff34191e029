package domain

import "time"

type JoinRequestStatus string

const (
	// JoinRequestStatusNone marks the absence of a row for a (carpool, user)
	// pair. It is never persisted.
	JoinRequestStatusNone     JoinRequestStatus = ""
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusApproved JoinRequestStatus = "approved"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
	JoinRequestStatusRemoved  JoinRequestStatus = "removed"
)

// JoinRequest is a passenger's application for one seat on a carpool.
//
// There is at most one row per (carpool, user) pair: a re-request after
// rejection or removal recycles the existing row back to pending instead of
// inserting a second one. Rows are never physically deleted while the carpool
// exists, so the pair's history stays auditable.
type JoinRequest struct {
	ID                int32             `json:"id"`
	CarpoolID         int32             `json:"carpool_id"`
	UserID            int32             `json:"user_id"`
	Status            JoinRequestStatus `json:"status"`
	Message           string            `json:"message,omitempty"`
	ViewedByRequester bool              `json:"viewed_by_requester"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// JoinRequestView is a join request joined with the requester's display info,
// as served by the owner's request queue.
type JoinRequestView struct {
	JoinRequest
	RequesterName  string `json:"requester_name"`
	RequesterSSOID string `json:"requester_sso_id"`
	RequesterEmail string `json:"requester_email"`
}

// StatusUpdate is one unseen status change in a requester's notification feed.
type StatusUpdate struct {
	RequestID    int32             `json:"id"`
	Status       JoinRequestStatus `json:"status"`
	CarpoolTitle string            `json:"carpool_title"`
}

// JoinAction is an action attempted against a join request's state machine.
type JoinAction string

const (
	JoinActionRequest JoinAction = "request"
	JoinActionApprove JoinAction = "approve"
	JoinActionReject  JoinAction = "reject"
	JoinActionRemove  JoinAction = "remove"
)

// joinTransitions is the full transition table for the join request
// lifecycle. Missing entries are invalid transitions.
var joinTransitions = map[JoinRequestStatus]map[JoinAction]JoinRequestStatus{
	JoinRequestStatusNone: {
		JoinActionRequest: JoinRequestStatusPending,
	},
	JoinRequestStatusPending: {
		JoinActionApprove: JoinRequestStatusApproved,
		JoinActionReject:  JoinRequestStatusRejected,
	},
	JoinRequestStatusApproved: {
		JoinActionRemove: JoinRequestStatusRemoved,
	},
	// Rejected and removed are terminal for owner actions, but the same user
	// may request again, which recycles the row back to pending.
	JoinRequestStatusRejected: {
		JoinActionRequest: JoinRequestStatusPending,
	},
	JoinRequestStatusRemoved: {
		JoinActionRequest: JoinRequestStatusPending,
	},
}

// NextStatus resolves the state machine transition for action against the
// current status. Invalid transitions return a ConflictError carrying the
// current status, which doubles as the idempotency guard against duplicate
// owner actions.
func NextStatus(current JoinRequestStatus, action JoinAction) (JoinRequestStatus, error) {
	if next, ok := joinTransitions[current][action]; ok {
		return next, nil
	}
	switch action {
	case JoinActionRequest:
		return "", NewAlreadyRequestedError(current)
	case JoinActionApprove, JoinActionReject:
		return "", NewNotPendingError(current)
	case JoinActionRemove:
		return "", NewNotApprovedError(current)
	}
	return "", &ConflictError{Reason: "invalid join request action", CurrentStatus: current}
}
