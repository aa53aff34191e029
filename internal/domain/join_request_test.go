package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current JoinRequestStatus
		action  JoinAction
		want    JoinRequestStatus
		wantErr bool
	}{
		{"first request", JoinRequestStatusNone, JoinActionRequest, JoinRequestStatusPending, false},
		{"approve pending", JoinRequestStatusPending, JoinActionApprove, JoinRequestStatusApproved, false},
		{"reject pending", JoinRequestStatusPending, JoinActionReject, JoinRequestStatusRejected, false},
		{"remove approved", JoinRequestStatusApproved, JoinActionRemove, JoinRequestStatusRemoved, false},
		{"re-request after rejection", JoinRequestStatusRejected, JoinActionRequest, JoinRequestStatusPending, false},
		{"re-request after removal", JoinRequestStatusRemoved, JoinActionRequest, JoinRequestStatusPending, false},
		{"double request while pending", JoinRequestStatusPending, JoinActionRequest, "", true},
		{"request while approved", JoinRequestStatusApproved, JoinActionRequest, "", true},
		{"approve twice", JoinRequestStatusApproved, JoinActionApprove, "", true},
		{"reject after approve", JoinRequestStatusApproved, JoinActionReject, "", true},
		{"approve rejected", JoinRequestStatusRejected, JoinActionApprove, "", true},
		{"remove pending", JoinRequestStatusPending, JoinActionRemove, "", true},
		{"remove twice", JoinRequestStatusRemoved, JoinActionRemove, "", true},
		{"approve missing row", JoinRequestStatusNone, JoinActionApprove, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextStatus(tt.current, tt.action)
			if tt.wantErr {
				assert.Error(t, err)
				var ce *ConflictError
				assert.True(t, errors.As(err, &ce), "invalid transitions must surface as conflicts")
				assert.Equal(t, tt.current, ce.CurrentStatus)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestCarpoolIsFull(t *testing.T) {
	c := &Carpool{Capacity: 3, CurrentPassengers: 2}
	assert.False(t, c.IsFull())

	c.CurrentPassengers = 3
	assert.True(t, c.IsFull())
}
