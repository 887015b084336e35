// Package workflow drives form submissions for a resource kind.
//
// A FormHandler turns a submitted form into a create or an update command,
// then waits for exactly one of the two terminal lifecycle actions of that
// request. The first to arrive decides the outcome; the other is not
// awaited further.
//
// # Lifecycle
//
// Each submission moves through an explicit state machine:
//
//	awaiting -> resolved    terminal action received
//	awaiting -> cancelled   context done before a terminal action
//
// On success the handler calls Submission.Resolve, resets the form,
// navigates to the resource's route and shows a success toast. On failure
// it calls Submission.Reject with a *SubmissionError and shows a danger
// toast. A cancelled submission is rejected with a *SubmissionError
// wrapping the context error and shows nothing, so tearing a form down
// never leaks a waiter.
//
// # Collaborators
//
// Forms, Routing and Notifier are supplied by the host application through
// options. Missing collaborators default to no-ops; the default Routing
// resolves routes with naming.RouteForEntry.
//
// # Usage
//
//	forms := workflow.NewFormHandler("project", resource.KindProject, h,
//	    workflow.WithNotifier(toaster),
//	    workflow.WithRouting(router),
//	)
//	if err := forms.Register(ctx); err != nil {
//	    return err
//	}
//	h.Dispatch(ctx, workflow.SubmitAction(workflow.Submission{
//	    Form:    "project",
//	    Values:  values,
//	    Resolve: resolve,
//	    Reject:  reject,
//	}))
package workflow
