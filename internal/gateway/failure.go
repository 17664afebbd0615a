package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a backend call did not succeed.
type Kind int

const (
	KindTransport Kind = iota + 1 // no HTTP response at all
	KindNotFound                  // 404
	KindRejected                  // other 4xx
	KindServer                    // 5xx
	KindDecode                    // 2xx with an unreadable body
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not found"
	case KindRejected:
		return "rejected"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the error every Client method returns. Message is the backend's
// own message when it sent one.
type Failure struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Status != 0 && f.Message != "":
		return fmt.Sprintf("%s: HTTP %d: %s", f.Op, f.Status, f.Message)
	case f.Status != 0:
		return fmt.Sprintf("%s: HTTP %d", f.Op, f.Status)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	}
	return f.Op + ": " + f.Kind.String()
}

func (f *Failure) Unwrap() error { return f.Err }

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindServer
	default:
		return KindRejected
	}
}

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == KindNotFound
}

// ServerMessage returns the backend's message carried by err, if any.
func ServerMessage(err error) string {
	if f, ok := AsFailure(err); ok {
		return f.Message
	}
	return ""
}
