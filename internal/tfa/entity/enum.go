package entity

// RejectReason classifies why a verification attempt was refused.
type RejectReason int16

const (
	// RejectReasonUnknown is mean reason is not known / not set.
	RejectReasonUnknown RejectReason = 0

	// RejectReasonMalformed mean the submitted code is not a well-formed code
	// (wrong length or non-digit characters) and no store was consulted.
	RejectReasonMalformed RejectReason = 1

	// RejectReasonInvalidCode mean the code did not match any step in the
	// accepted time window.
	RejectReasonInvalidCode RejectReason = 2

	// RejectReasonAlreadyUsed mean the code already completed a verification
	// and was refused as a replay.
	RejectReasonAlreadyUsed RejectReason = 3

	// RejectReasonNotEnrolled mean no usable seed exists for the user.
	RejectReasonNotEnrolled RejectReason = 4
)

func (r RejectReason) String() string {
	switch r {
	case RejectReasonMalformed:
		return "Malformed"
	case RejectReasonInvalidCode:
		return "InvalidCode"
	case RejectReasonAlreadyUsed:
		return "AlreadyUsed"
	case RejectReasonNotEnrolled:
		return "NotEnrolled"
	default:
		return "Unknown"
	}
}
