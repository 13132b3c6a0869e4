package tracking

import "errors"

var (
	// ErrTransport live-соединение недоступно или оборвалось. Watcher переходит на опрос.
	ErrTransport     = errors.New("tracking transport failure")
	ErrOrderNotFound = errors.New("order not found")
)
