package event

const ReplayDetectedDestination string = "tfa_replay_detected"

// ReplayDetectedDestinationConsumerAudit names the consumer group the audit
// service subscribes with on ReplayDetectedDestination.
const ReplayDetectedDestinationConsumerAudit string = "tfa_replay_detected_audit"

type ReplayDetectedMessage struct {
	UserID   int64  `json:"user_id"`
	OriginIP string `json:"origin_ip"`
	Reason   string `json:"reason"`
}
