package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tailored-agentic-units/resources/hub"
)

// ServiceResolver returns the fully qualified service that serves method.
type ServiceResolver func(method string) (string, bool)

// ServiceMap resolves methods through a method-to-service table.
func ServiceMap(services map[string]string) ServiceResolver {
	return func(method string) (string, bool) {
		service, ok := services[method]
		return service, ok
	}
}

type structClient = connect.Client[structpb.Struct, structpb.Struct]

// ConnectInvoker issues calls with the connect protocol, sending and
// receiving google.protobuf.Struct messages so no generated code is needed.
type ConnectInvoker struct {
	httpClient connect.HTTPClient
	baseURL    string
	resolve    ServiceResolver
	options    []connect.ClientOption

	clients map[string]*structClient
	mutex   sync.Mutex
}

func NewConnectInvoker(httpClient connect.HTTPClient, baseURL string, resolve ServiceResolver, options ...connect.ClientOption) *ConnectInvoker {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &ConnectInvoker{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		resolve:    resolve,
		options:    options,
		clients:    make(map[string]*structClient),
	}
}

func (i *ConnectInvoker) Invoke(ctx context.Context, call Call) (map[string]any, error) {
	if call.Method == "" {
		return nil, ErrInvalidCall
	}

	service, ok := i.resolve(call.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, call.Method)
	}

	msg, err := structpb.NewStruct(call.Data)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("encode %s request: %w", call.Method, err))
	}

	client := i.client("/" + service + "/" + call.Method)
	res, err := client.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return res.Msg.AsMap(), nil
}

func (i *ConnectInvoker) client(procedure string) *structClient {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if client, ok := i.clients[procedure]; ok {
		return client
	}

	client := connect.NewClient[structpb.Struct, structpb.Struct](i.httpClient, i.baseURL+procedure, i.options...)
	i.clients[procedure] = client
	return client
}

// NewConnectInterceptor reports the unary calls of a connect client on h.
// Install it on clients that are not driven through Client, otherwise each
// call is reported twice.
func NewConnectInterceptor(h hub.Hub) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !req.Spec().IsClient {
				return next(ctx, req)
			}

			call := Call{
				Method: MethodName(req.Spec().Procedure),
				Data:   messageData(req.Any()),
			}
			invoked := InvokedAction(call, "")
			_ = h.Dispatch(ctx, invoked)

			res, err := next(ctx, req)
			if err != nil {
				_ = h.Dispatch(ctx, FailedAction(call, ErrorCode(err), errorMessage(err), invoked.ID))
				return res, err
			}

			if header := res.Header(); len(header) > 0 {
				_ = h.Dispatch(ctx, MetadataSetAction(call.Method, header.Clone(), invoked.ID))
			}
			_ = h.Dispatch(ctx, SucceededAction(call, messageData(res.Any()), invoked.ID))

			return res, nil
		}
	}
}
