package common

// StatusError carries a process exit code for conditions reported through the
// normal error flow, like lint runs that found violations.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	return e.Msg
}
