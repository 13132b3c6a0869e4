// Package eventstream пишет Server-Sent Events поверх http.ResponseWriter.
package eventstream

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
)

const (
	EventSnapshot      = "snapshot"
	EventStatusChanged = "status_changed"
	EventPing          = "ping"
	EventClosed        = "closed"

	// ReconnectDelay столько браузер ждёт перед переподключением, совпадает с интервалом опроса.
	ReconnectDelay = 30 * time.Second
)

var ErrStreamingUnsupported = errors.New("streaming unsupported")

type Stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// Start пишет заголовки потока и снимает write deadline сервера,
// иначе WriteTimeout оборвёт долгое соединение.
func Start(w http.ResponseWriter) (*Stream, error) {
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return nil, err
	}

	header := w.Header()
	header.Set("Content-Type", sse.ContentType)
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &Stream{w: w, rc: rc}
	if err := s.flush(); err != nil {
		return nil, err
	}
	return s, nil
}

// Send пишет событие с JSON данными. Первое событие потока стоит отправлять
// с withRetry, чтобы браузер знал задержку переподключения.
func (s *Stream) Send(event, id string, data any, withRetry bool) error {
	e := sse.Event{
		Event: event,
		Id:    id,
		Data:  data,
	}
	if withRetry {
		e.Retry = uint(ReconnectDelay / time.Millisecond)
	}

	if err := sse.Encode(s.w, e); err != nil {
		return err
	}
	return s.flush()
}

func (s *Stream) Ping(now time.Time) error {
	return s.Send(EventPing, "", map[string]string{"time": now.UTC().Format(time.RFC3339)}, false)
}

func (s *Stream) flush() error {
	if err := s.rc.Flush(); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			return ErrStreamingUnsupported
		}
		return err
	}
	return nil
}
