package transport

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var protoMarshal = protojson.MarshalOptions{UseProtoNames: true}

// messageData converts an RPC message into untyped entry data. Generated
// messages go through protojson so field names match the wire names the
// backend uses.
func messageData(v any) map[string]any {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return m
	case *structpb.Struct:
		if m == nil {
			return nil
		}
		return m.AsMap()
	case proto.Message:
		raw, err := protoMarshal.Marshal(m)
		if err != nil {
			return nil
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil
		}
		return data
	default:
		return nil
	}
}

// errorMessage returns the message of err without its code prefix.
func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}
