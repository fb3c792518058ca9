package crud

import "context"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notice is a titled user-facing message.
type Notice struct {
	Title    string
	Text     string
	Severity Severity
}

// Notifier presents notices. Implementations must not block on user input.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

type ConfirmOptions struct {
	ConfirmLabel string
	CancelLabel  string
	Severity     Severity
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, title, body string, opts ConfirmOptions) (bool, error)
}

// Gateway is the remote collection of one entity type.
type Gateway[E any] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, id int64, e E) (E, error)
	Delete(ctx context.Context, id int64) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// AlwaysConfirm answers every confirmation with yes (scripted CLI use).
type AlwaysConfirm struct{}

func (AlwaysConfirm) Confirm(context.Context, string, string, ConfirmOptions) (bool, error) {
	return true, nil
}
