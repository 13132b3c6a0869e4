package order_events

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/auth"
	"ordertracker/internal/pkg/orderevents"
	"ordertracker/internal/service/order"
	"ordertracker/pkg/broadcast"
	"ordertracker/pkg/logger"
)

type Handler struct {
	log        handlerLogger
	service    Service
	subscriber Subscriber
	tokens     TokenParser
}

func New(log handlerLogger, service Service, subscriber Subscriber, tokens TokenParser) *Handler {
	handlerLog := log.With(logger.NewField("handler", "grpc_order_events"))

	return &Handler{
		log:        handlerLog,
		service:    service,
		subscriber: subscriber,
		tokens:     tokens,
	}
}

// Subscribe стримит события одного заказа или, для админа с пустым id, всех заказов.
// Поток одного заказа завершается после терминального статуса.
func (h *Handler) Subscribe(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()
	orderID := req.GetValue()

	var (
		sub      *broadcast.Subscription[entities.OrderStatusChanged]
		finished bool
	)
	if orderID == "" {
		if err := h.requireAdmin(ctx); err != nil {
			return err
		}
		sub = h.subscriber.SubscribeAll(ctx)
	} else {
		sub = h.subscriber.SubscribeOrder(ctx, orderID)
		current, err := h.service.GetOrder(ctx, orderID)
		if err != nil {
			sub.Close()
			if errors.Is(err, order.ErrOrderNotFound) {
				return status.Error(codes.NotFound, err.Error())
			}
			h.log.Error("failed to load order for stream",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
			return status.Error(codes.Internal, "internal error")
		}
		finished = current.Status.IsTerminal()
	}
	defer sub.Close()

	// заголовки сразу, клиент по ним понимает, что подписка оформлена
	if err := stream.SendHeader(metadata.MD{}); err != nil {
		return err
	}
	if finished {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()

		case event, ok := <-sub.Events():
			if !ok {
				return subscriptionStatus(sub.Err())
			}

			msg, err := orderevents.ToStruct(event)
			if err != nil {
				h.log.Error("failed to encode order event",
					logger.NewField("event_id", event.EventID),
					logger.NewField("error", err),
				)
				continue
			}
			if err := stream.Send(msg); err != nil {
				return err
			}

			if orderID != "" && event.NewStatus.IsTerminal() {
				return nil
			}
		}
	}
}

func (h *Handler) requireAdmin(ctx context.Context) error {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(orderevents.AuthorizationKey); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := auth.BearerToken(header)
	if err != nil {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	actor, err := h.tokens.Parse(token)
	if err != nil {
		h.log.Warn("rejected bearer token", logger.NewField("error", err))
		return status.Error(codes.Unauthenticated, "invalid token")
	}
	if !actor.IsAdmin() {
		return status.Error(codes.PermissionDenied, "admin role required")
	}
	return nil
}

func subscriptionStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, broadcast.ErrSlowConsumer):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, broadcast.ErrHubClosed):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.FromContextError(err).Err()
	}
}
