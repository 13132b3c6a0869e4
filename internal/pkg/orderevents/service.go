// Package orderevents описывает gRPC сервис ordertracker.v1.OrderEvents.
//
// Сообщения только из well-known типов: запрос google.protobuf.StringValue
// с id заказа (пустая строка означает все заказы), ответ google.protobuf.Struct
// на каждое событие. Поэтому дескриптор объявлен вручную, без protoc.
package orderevents

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName     = "ordertracker.v1.OrderEvents"
	SubscribeMethod = "/" + ServiceName + "/Subscribe"

	// AuthorizationKey ключ metadata с bearer токеном.
	AuthorizationKey = "authorization"
)

type Server interface {
	Subscribe(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Subscribe",
			Handler:       subscribeHandler,
			ServerStreams: true,
		},
	},
	Metadata: "ordertracker/v1/order_events.proto",
}

func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}

func subscribeHandler(srv any, stream grpc.ServerStream) error {
	req := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(Server).Subscribe(req, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

type Client interface {
	Subscribe(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) Client {
	return &client{cc: cc}
}

func (c *client) Subscribe(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], SubscribeMethod, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
