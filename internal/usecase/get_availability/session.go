package get_availability

import (
	"context"
	"fmt"
	"sync"
)

// Executor источник расчёта доступности (UseCase или обёртка над HTTP API)
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// SessionState состояние экрана доступности
type SessionState int

const (
	StateIdle SessionState = iota
	StateLoading
	StateReady
	StateEmpty
	StateError
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot опубликованное состояние сессии
type Snapshot struct {
	State     SessionState
	Token     uint64
	Response  *Response // Только для Ready и Empty
	Err       error     // Только для Error
	Retryable bool
}

// Session держит последний авторитетный результат расчёта доступности для одного потребителя.
//
// Каждый Load отменяет контекст предыдущего запроса и получает новый токен.
// Результат публикуется, только если токен всё ещё последний и сессия не закрыта.
// onChange вызывается без удержания блокировки, поэтому из него можно читать State().
type Session struct {
	executor Executor

	mu       sync.Mutex
	token    uint64
	version  uint64 // номер последней публикации
	cancel   context.CancelFunc
	closed   bool
	snapshot Snapshot
	onChange func(Snapshot)
}

// NewSession создает сессию; onChange вызывается на каждую публикацию (может быть nil)
func NewSession(executor Executor, onChange func(Snapshot)) *Session {
	return &Session{
		executor: executor,
		onChange: onChange,
	}
}

// Load запускает расчёт и блокируется до его завершения.
// Возвращает опубликованное состояние и false, если результат был отброшен
// (запрос вытеснен более новым или сессия закрыта).
func (s *Session) Load(ctx context.Context, req *Request) (Snapshot, bool) {
	s.mu.Lock()
	if s.closed {
		snapshot := s.snapshot
		s.mu.Unlock()
		return snapshot, false
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	token := s.token

	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	notify := s.publishLocked(Snapshot{State: StateLoading, Token: token})
	s.mu.Unlock()
	notify()

	resp, err := s.executor.Execute(callCtx, req)
	cancel()

	s.mu.Lock()
	if s.closed || token != s.token {
		snapshot := s.snapshot
		s.mu.Unlock()
		return snapshot, false
	}
	s.cancel = nil

	next := Snapshot{Token: token}
	switch {
	case err != nil:
		next.State = StateError
		next.Err = err
		next.Retryable = IsRetryable(err)
	case resp == nil:
		next.State = StateError
		next.Err = fmt.Errorf("%w: executor returned no response", ErrInternal)
	case !resp.HasOpenings():
		next.State = StateEmpty
		next.Response = resp
	default:
		next.State = StateReady
		next.Response = resp
	}

	notify = s.publishLocked(next)
	s.mu.Unlock()
	notify()

	return next, true
}

// State текущее опубликованное состояние
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Close отменяет текущий запрос; все последующие результаты отбрасываются
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// publishLocked сохраняет состояние под s.mu и возвращает уведомление подписчика.
// Уведомление вызывается после освобождения s.mu; устаревшая публикация
// (после неё уже была новая) подписчику не доставляется.
func (s *Session) publishLocked(snapshot Snapshot) func() {
	s.snapshot = snapshot
	s.version++

	if s.onChange == nil {
		return func() {}
	}

	version := s.version
	return func() {
		s.mu.Lock()
		stale := version != s.version
		s.mu.Unlock()

		if !stale {
			s.onChange(snapshot)
		}
	}
}
