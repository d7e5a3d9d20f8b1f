package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/tfabit/internal/pkg/instrument"
	"github.com/shandysiswandi/tfabit/internal/pkg/messaging"
	"github.com/shandysiswandi/tfabit/internal/shared/event"
	"github.com/shandysiswandi/tfabit/internal/tfa/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishDeviceTrusted(ctx context.Context, msg usecase.DeviceTrustedEvent) error {
	return m.publish(ctx, "PublishDeviceTrusted", event.DeviceTrustedDestination, event.DeviceTrustedMessage{
		UserID:      msg.UserID,
		DeviceID:    msg.DeviceID,
		DisplayName: msg.DisplayName,
		OriginIP:    msg.OriginIP,
	})
}

func (m *Messaging) PublishDeviceRevoked(ctx context.Context, msg usecase.DeviceRevokedEvent) error {
	return m.publish(ctx, "PublishDeviceRevoked", event.DeviceRevokedDestination, event.DeviceRevokedMessage{
		UserID:     msg.UserID,
		DeviceID:   msg.DeviceID,
		RevokedAll: msg.RevokedAll,
	})
}

func (m *Messaging) PublishReplayDetected(ctx context.Context, msg usecase.ReplayDetectedEvent) error {
	return m.publish(ctx, "PublishReplayDetected", event.ReplayDetectedDestination, event.ReplayDetectedMessage{
		UserID:   msg.UserID,
		OriginIP: msg.OriginIP,
		Reason:   msg.Reason.String(),
	})
}

func (m *Messaging) publish(ctx context.Context, name, destination string, payload any) error {
	ctx, span := m.ins.Tracer("tfa.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
