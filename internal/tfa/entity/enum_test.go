package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectReason_String(t *testing.T) {
	tests := []struct {
		reason RejectReason
		want   string
	}{
		{reason: RejectReasonUnknown, want: "Unknown"},
		{reason: RejectReasonMalformed, want: "Malformed"},
		{reason: RejectReasonInvalidCode, want: "InvalidCode"},
		{reason: RejectReasonAlreadyUsed, want: "AlreadyUsed"},
		{reason: RejectReasonNotEnrolled, want: "NotEnrolled"},
		{reason: RejectReason(99), want: "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.reason.String(), "reason %d", tc.reason)
	}
}
