package mutate

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Notifier is the user-facing side of a mutation: a blocking loading indicator, transient
// notifications, and a hook fired after a reload replaced the store snapshot (the signal
// to re-render).
type Notifier interface {
	ShowLoading(text string)
	HideLoading()
	Toast(kind ToastKind, text string)
	SnapshotReplaced()
}

// NopNotifier discards everything.
type NopNotifier struct{}

func (NopNotifier) ShowLoading(string)      {}
func (NopNotifier) HideLoading()            {}
func (NopNotifier) Toast(ToastKind, string) {}
func (NopNotifier) SnapshotReplaced()       {}
