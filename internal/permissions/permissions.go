package permissions

// Status describes whether the process may observe global input events.
type Status int

const (
	StatusNotApplicable Status = iota
	StatusGranted
	StatusDenied
)

func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "granted"
	case StatusDenied:
		return "denied"
	default:
		return "not_applicable"
	}
}

// Report is the outcome of a permission probe.
type Report struct {
	Status   Status
	Guidance string
}

// Allowed reports whether installing a global tap is expected to succeed.
func (r Report) Allowed() bool {
	return r.Status != StatusDenied
}
