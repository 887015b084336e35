// Package transport describes the generic RPC lifecycle events the
// resource-state layer observes, and ships the adapters that produce them.
//
// The transport itself is a black box. Whatever issues RPCs reports each
// call as a sequence of actions on the hub:
//
//	@ grpc / INVOKED    -> Invoked{Call}
//	@ grpc / SUCCEEDED  -> Succeeded{Request, Data}
//	@ grpc / FAILED     -> Failed{Request, Code, Message}
//	@ grpc / METADATA_SET -> MetadataSet{Method, Metadata}
//
// Payloads are a closed set of structs implementing Event, so consumers
// switch on the payload type instead of probing untyped maps.
//
// Three producers are provided. Client executes invoke commands through a
// pluggable Invoker (ConnectInvoker speaks the connect protocol with
// structpb messages). NewConnectInterceptor and UnaryClientInterceptor
// observe existing connect and gRPC clients. DecodeLog replays a recorded
// event log, validated against a JSON schema.
package transport
