package event

const DeviceRevokedDestination string = "tfa_device_revoked"

// DeviceRevokedDestinationConsumerAudit names the consumer group the audit
// service subscribes with on DeviceRevokedDestination.
const DeviceRevokedDestinationConsumerAudit string = "tfa_device_revoked_audit"

type DeviceRevokedMessage struct {
	UserID     int64 `json:"user_id"`
	DeviceID   int64 `json:"device_id,omitempty"`
	RevokedAll bool  `json:"revoked_all"`
}
