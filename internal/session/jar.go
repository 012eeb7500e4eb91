package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

var (
	// ErrNoCookieJar - в контексте нет запроса, обернутого Manager.Middleware
	ErrNoCookieJar = errors.New("session: no cookie jar in context")
	// ErrHeadersWritten - заголовки ответа уже отправлены, cookie поставить нельзя
	ErrHeadersWritten = errors.New("session: response headers already written")
)

type jarKey struct{}

type deferredTask struct {
	run   func() error
	onErr func(error)
}

// jar - cookie запроса и ответа в рамках одного HTTP запроса.
// Значения, выставленные во время запроса, видны последующим чтениям.
type jar struct {
	mu      sync.Mutex
	r       *http.Request
	w       http.ResponseWriter
	values  map[string]*string
	tasks   []deferredTask
	once    map[string]struct{}
	written bool
}

func newJar(w http.ResponseWriter, r *http.Request) *jar {
	return &jar{
		r:      r,
		w:      w,
		values: make(map[string]*string),
		once:   make(map[string]struct{}),
	}
}

func withJar(ctx context.Context, j *jar) context.Context {
	return context.WithValue(ctx, jarKey{}, j)
}

func jarFromContext(ctx context.Context) (*jar, error) {
	j, ok := ctx.Value(jarKey{}).(*jar)
	if !ok || j == nil {
		return nil, ErrNoCookieJar
	}
	return j, nil
}

func (j *jar) get(name string) (string, bool) {
	j.mu.Lock()
	v, overridden := j.values[name]
	j.mu.Unlock()

	if overridden {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	c, err := j.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (j *jar) set(c *http.Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.written {
		return ErrHeadersWritten
	}

	http.SetCookie(j.w, c)
	if c.MaxAge < 0 {
		j.values[c.Name] = nil
	} else {
		value := c.Value
		j.values[c.Name] = &value
	}

	return nil
}

// deferOnce - ставит задачу, которая выполнится перед отправкой заголовков ответа.
// Задача с тем же ключом за запрос ставится один раз. Если заголовки уже ушли,
// задача выполняется в отдельной горутине, ошибки уходят только в onErr.
func (j *jar) deferOnce(key string, run func() error, onErr func(error)) {
	j.mu.Lock()
	if _, ok := j.once[key]; ok {
		j.mu.Unlock()
		return
	}
	j.once[key] = struct{}{}

	task := deferredTask{run: run, onErr: onErr}
	if !j.written {
		j.tasks = append(j.tasks, task)
		j.mu.Unlock()
		return
	}
	j.mu.Unlock()

	go task.execute()
}

// flush - выполняет отложенные задачи и закрывает jar для записи cookie
func (j *jar) flush() {
	for {
		j.mu.Lock()
		if j.written {
			j.mu.Unlock()
			return
		}
		if len(j.tasks) == 0 {
			j.written = true
			j.mu.Unlock()
			return
		}
		tasks := j.tasks
		j.tasks = nil
		j.mu.Unlock()

		for _, task := range tasks {
			task.execute()
		}
	}
}

func (t deferredTask) execute() {
	defer func() {
		if rec := recover(); rec != nil {
			t.report(fmt.Errorf("session: deferred task panic: %v", rec))
		}
	}()

	if err := t.run(); err != nil {
		t.report(err)
	}
}

func (t deferredTask) report(err error) {
	if t.onErr != nil {
		t.onErr(err)
	}
}

// responseWriter - выполняет отложенные задачи jar перед первой записью ответа
type responseWriter struct {
	http.ResponseWriter
	jar *jar
}

func (w *responseWriter) WriteHeader(code int) {
	w.jar.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.jar.flush()
	return w.ResponseWriter.Write(b)
}

// Flush - для потоковых ответов, отложенные задачи выполняются до сброса буфера
func (w *responseWriter) Flush() {
	w.jar.flush()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap - остальные интерфейсы (Hijacker и т.п.) доступны через http.ResponseController
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
