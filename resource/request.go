package resource

import (
	"slices"
	"strings"
)

// RequestKind is one of the five CRUD-style operation categories.
type RequestKind string

const (
	RequestList    RequestKind = "LIST"
	RequestGet     RequestKind = "GET"
	RequestCreate  RequestKind = "CREATE"
	RequestUpdate  RequestKind = "UPDATE"
	RequestDestroy RequestKind = "DESTROY"
)

var requestKinds = []RequestKind{
	RequestList,
	RequestGet,
	RequestCreate,
	RequestUpdate,
	RequestDestroy,
}

// RequestKinds returns the closed set of request kinds in their fixed order.
func RequestKinds() []RequestKind {
	return slices.Clone(requestKinds)
}

// Valid reports whether r is a member of the closed set.
func (r RequestKind) Valid() bool {
	return slices.Contains(requestKinds, r)
}

// Status is the lifecycle stage of an in-flight request.
type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

var statuses = []Status{
	StatusRequested,
	StatusSucceeded,
	StatusFailed,
}

// Statuses returns the closed set of statuses in their fixed order.
func Statuses() []Status {
	return slices.Clone(statuses)
}

// Valid reports whether s is a member of the closed set.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// Descriptor names one lifecycle action of a resource: <RequestKind>_<Status>.
type Descriptor string

// NewDescriptor joins a request kind and a status into a descriptor.
func NewDescriptor(request RequestKind, status Status) Descriptor {
	return Descriptor(string(request) + "_" + string(status))
}

// Split returns the request kind and status encoded in d.
func (d Descriptor) Split() (RequestKind, Status, bool) {
	request, status, found := strings.Cut(string(d), "_")
	if !found {
		return "", "", false
	}

	r, s := RequestKind(request), Status(status)
	if !r.Valid() || !s.Valid() {
		return "", "", false
	}
	return r, s, true
}

func (d Descriptor) String() string {
	return string(d)
}
