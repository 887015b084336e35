package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/tailored-agentic-units/resources/hub"
)

// UnaryClientInterceptor reports the unary calls of a gRPC client
// connection on h.
//
//	conn, err := grpc.NewClient(target,
//	    grpc.WithUnaryInterceptor(transport.UnaryClientInterceptor(h)))
func UnaryClientInterceptor(h hub.Hub) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		call := Call{
			Method: MethodName(method),
			Data:   messageData(req),
		}
		invoked := InvokedAction(call, "")
		_ = h.Dispatch(ctx, invoked)

		var header metadata.MD
		opts = append(opts, grpc.Header(&header))

		if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
			_ = h.Dispatch(ctx, FailedAction(call, ErrorCode(err), errorMessage(err), invoked.ID))
			return err
		}

		if len(header) > 0 {
			_ = h.Dispatch(ctx, MetadataSetAction(call.Method, header.Copy(), invoked.ID))
		}
		_ = h.Dispatch(ctx, SucceededAction(call, messageData(reply), invoked.ID))

		return nil
	}
}
