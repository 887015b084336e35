package runtime_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tailored-agentic-units/resources/config"
	"github.com/tailored-agentic-units/resources/observability"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/runtime"
	"github.com/tailored-agentic-units/resources/transport"
	"github.com/tailored-agentic-units/resources/workflow"
)

const projectName = "organizations/acme/projects/web"

type toasts struct {
	mu   sync.Mutex
	seen []workflow.Toast
}

func (t *toasts) ShowToast(ctx context.Context, toast workflow.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen = append(t.seen, toast)
}

func (t *toasts) all() []workflow.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]workflow.Toast(nil), t.seen...)
}

// backend answers project calls from memory.
func backend(ctx context.Context, call transport.Call) (map[string]any, error) {
	switch call.Method {
	case "ListProjects":
		return map[string]any{
			"projects": []any{
				map[string]any{"name": projectName, "display_name": "Web"},
			},
		}, nil
	case "CreateProject":
		return map[string]any{"name": projectName, "display_name": "Web"}, nil
	case "UpdateProject":
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("read only"))
	default:
		return nil, connect.NewError(connect.CodeUnimplemented, errors.New(call.Method))
	}
}

func newRuntime(t *testing.T, opts ...runtime.Option) *runtime.Runtime {
	t.Helper()

	cfg := config.Default()
	opts = append([]runtime.Option{
		runtime.WithObserver(observability.NoOpObserver{}),
		runtime.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)

	rt, err := runtime.New(context.Background(), &cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Shutdown(time.Second) })
	return rt
}

func TestNew(t *testing.T) {
	rt := newRuntime(t)

	assert.NotEmpty(t, rt.ID())
	assert.Equal(t, []resource.Kind{resource.KindOrganization, resource.KindProject, resource.KindSite}, rt.Kinds())
	assert.Equal(t, []resource.Kind{resource.KindOrganization, resource.KindProject, resource.KindSite}, rt.State().Kinds())

	for _, kind := range rt.Kinds() {
		_, err := rt.Selectors(kind)
		assert.NoError(t, err)
		_, err = rt.Codec(kind)
		assert.NoError(t, err)
		types, err := rt.Types(kind)
		require.NoError(t, err)
		assert.Equal(t, 15, types.Len())
	}

	for _, form := range []string{"organization", "project", "site"} {
		_, err := rt.Form(form)
		assert.NoError(t, err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Resources = append(cfg.Resources, config.ResourceConfig{Kind: "widgets", Template: "/widgets/:slug"})

	_, err := runtime.New(context.Background(), &cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Observer = "missing"
	_, err = runtime.New(context.Background(), &cfg)
	assert.Error(t, err)
}

func TestNew_DoesNotMutateConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Resources = []config.ResourceConfig{{Kind: "project", Template: "/projects/:slug"}}

	rt, err := runtime.New(context.Background(), &cfg, runtime.WithObserver(observability.NoOpObserver{}))
	require.NoError(t, err)
	defer rt.Shutdown(time.Second)

	assert.Equal(t, resource.Kind("project"), cfg.Resources[0].Kind)
	assert.Equal(t, []resource.Kind{resource.KindProject}, rt.Kinds())
}

func TestAccessors_UnmanagedKind(t *testing.T) {
	cfg := config.Default()
	cfg.Resources = cfg.Resources[:1]

	rt, err := runtime.New(context.Background(), &cfg, runtime.WithObserver(observability.NoOpObserver{}))
	require.NoError(t, err)
	defer rt.Shutdown(time.Second)

	_, err = rt.Selectors(resource.KindSite)
	assert.ErrorIs(t, err, runtime.ErrUnmanagedKind)
	_, err = rt.Codec(resource.KindSite)
	assert.ErrorIs(t, err, runtime.ErrUnmanagedKind)
	_, err = rt.Types(resource.KindSite)
	assert.ErrorIs(t, err, runtime.ErrUnmanagedKind)
	_, err = rt.Actions(resource.KindSite)
	assert.ErrorIs(t, err, runtime.ErrUnmanagedKind)
	assert.ErrorIs(t, rt.Invoke(context.Background(), resource.KindSite, resource.RequestList, nil), runtime.ErrUnmanagedKind)
	_, err = rt.Form("site")
	assert.ErrorIs(t, err, runtime.ErrUnknownForm)
	assert.ErrorIs(t, rt.Submit(context.Background(), workflow.Submission{Form: "site"}), runtime.ErrUnknownForm)
}

func TestInvoke_ListPopulatesStore(t *testing.T) {
	rt := newRuntime(t, runtime.WithInvoker(transport.InvokerFunc(backend)))

	types, err := rt.Types(resource.KindProject)
	require.NoError(t, err)

	waiter, err := rt.Hub().Await(types.For(resource.RequestList, resource.StatusSucceeded))
	require.NoError(t, err)

	require.NoError(t, rt.Invoke(context.Background(), resource.KindProject, resource.RequestList, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = waiter.Wait(ctx)
	require.NoError(t, err)

	projects, err := rt.Selectors(resource.KindProject)
	require.NoError(t, err)

	root := rt.State()
	assert.Equal(t, 1, projects.CountAll(root))

	entry, ok := projects.GetForURL(root, "https://dashboard.example.com/"+projectName+"/sites")
	require.True(t, ok)
	assert.Equal(t, "Web", entry["display_name"])

	codec, err := rt.Codec(resource.KindProject)
	require.NoError(t, err)
	parsed := codec.ParseName(projectName)
	assert.Equal(t, "web", parsed.Slug)
	assert.Equal(t, "organizations/acme", parsed.Parent)
}

func TestSubmit(t *testing.T) {
	notifier := &toasts{}
	rt := newRuntime(t,
		runtime.WithInvoker(transport.InvokerFunc(backend)),
		runtime.WithNotifier(notifier),
	)

	t.Run("create resolves", func(t *testing.T) {
		done := make(chan error, 1)
		require.NoError(t, rt.Submit(context.Background(), workflow.Submission{
			Form:    "project",
			Values:  map[string]any{"project": map[string]any{"display_name": "Web"}},
			Resolve: func() { done <- nil },
			Reject:  func(err error) { done <- err },
		}))

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("submission did not settle")
		}

		projects, err := rt.Selectors(resource.KindProject)
		require.NoError(t, err)
		_, ok := projects.GetByName(rt.State(), projectName)
		assert.True(t, ok)
	})

	t.Run("update rejects", func(t *testing.T) {
		done := make(chan error, 1)
		require.NoError(t, rt.Submit(context.Background(), workflow.Submission{
			Form:    "project",
			Values:  map[string]any{"project": map[string]any{"name": projectName}},
			Resolve: func() { done <- nil },
			Reject:  func(err error) { done <- err },
		}))

		var err error
		select {
		case err = <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("submission did not settle")
		}

		var submissionErr *workflow.SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, "permission_denied", submissionErr.Code)
	})

	require.Eventually(t, func() bool { return len(notifier.all()) == 2 }, 2*time.Second, 10*time.Millisecond)
	messages := make([]string, 0, 2)
	for _, toast := range notifier.all() {
		messages = append(messages, toast.Message)
	}
	assert.ElementsMatch(t, []string{"Project created", "Project update failed"}, messages)
}

func TestConnectTransport(t *testing.T) {
	const service = "presslabs.dashboard.projects.v1.ProjectsService"

	mux := http.NewServeMux()
	mux.Handle("/"+service+"/GetProject", connect.NewUnaryHandler(
		"/"+service+"/GetProject",
		func(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
			msg, err := structpb.NewStruct(map[string]any{
				"name":         req.Msg.GetFields()["name"].GetStringValue(),
				"display_name": "Web",
			})
			if err != nil {
				return nil, err
			}
			return connect.NewResponse(msg), nil
		},
	))
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := config.Default()
	cfg.Transport.BaseURL = server.URL

	rt, err := runtime.New(context.Background(), &cfg,
		runtime.WithObserver(observability.NoOpObserver{}),
		runtime.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	defer rt.Shutdown(time.Second)

	types, err := rt.Types(resource.KindProject)
	require.NoError(t, err)
	waiter, err := rt.Hub().Await(
		types.For(resource.RequestGet, resource.StatusSucceeded),
		types.For(resource.RequestGet, resource.StatusFailed),
	)
	require.NoError(t, err)

	actions, err := rt.Actions(resource.KindProject)
	require.NoError(t, err)
	require.NoError(t, rt.Dispatch(context.Background(), actions.Get(projectName)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := waiter.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.For(resource.RequestGet, resource.StatusSucceeded), outcome.Type)

	projects, err := rt.Selectors(resource.KindProject)
	require.NoError(t, err)
	entry, ok := projects.GetByName(rt.State(), projectName)
	require.True(t, ok)
	assert.Equal(t, "Web", entry["display_name"])
}

func TestServices(t *testing.T) {
	cfg := config.Default()
	services := runtime.Services(&cfg)

	assert.Len(t, services, 15)
	assert.Equal(t, "presslabs.dashboard.projects.v1.ProjectsService", services["ListProjects"])
	assert.Equal(t, "presslabs.dashboard.projects.v1.ProjectsService", services["DeleteProject"])
	assert.Equal(t, "presslabs.dashboard.sites.v1.SitesService", services["GetSite"])
	assert.Equal(t, "presslabs.dashboard.organizations.v1.OrganizationsService", services["CreateOrganization"])
}

func TestShutdown(t *testing.T) {
	cfg := config.Default()
	rt, err := runtime.New(context.Background(), &cfg,
		runtime.WithObserver(observability.NoOpObserver{}),
		runtime.WithInvoker(transport.InvokerFunc(backend)),
	)
	require.NoError(t, err)

	require.NoError(t, rt.Shutdown(time.Second))
	assert.NoError(t, rt.Shutdown(time.Second), "second shutdown is a no-op")

	err = rt.Invoke(context.Background(), resource.KindProject, resource.RequestList, nil)
	assert.Error(t, err)
}
