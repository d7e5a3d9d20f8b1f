package event

const DeviceTrustedDestination string = "tfa_device_trusted"

// DeviceTrustedDestinationConsumerAudit names the consumer group the audit
// service subscribes with on DeviceTrustedDestination.
const DeviceTrustedDestinationConsumerAudit string = "tfa_device_trusted_audit"

type DeviceTrustedMessage struct {
	UserID      int64  `json:"user_id"`
	DeviceID    int64  `json:"device_id"`
	DisplayName string `json:"display_name"`
	OriginIP    string `json:"origin_ip"`
}
