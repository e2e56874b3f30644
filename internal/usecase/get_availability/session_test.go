package get_availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CareBookingService/internal/domain"
)

type executorFunc func(ctx context.Context, req *Request) (*Response, error)

func (f executorFunc) Execute(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

func responseWithSlots(available bool) *Response {
	return &Response{Days: []domain.DaySlots{{
		Slots: []domain.TimeSlot{{StartTime: "08:00", EndTime: "12:00", IsAvailable: available}},
	}}}
}

func TestSession_LatestRequestWins(t *testing.T) {
	started := make(chan struct{})
	exec := executorFunc(func(ctx context.Context, req *Request) (*Response, error) {
		if req.SlotDurationHours == 4 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return responseWithSlots(true), nil
	})
	session := NewSession(exec, nil)

	type result struct {
		snapshot  Snapshot
		published bool
	}
	firstDone := make(chan result, 1)
	go func() {
		s, ok := session.Load(context.Background(), &Request{CaregiverID: 1, SlotDurationHours: 4})
		firstDone <- result{s, ok}
	}()
	<-started

	second, ok := session.Load(context.Background(), &Request{CaregiverID: 1, SlotDurationHours: 2})
	require.True(t, ok)
	assert.Equal(t, StateReady, second.State)
	assert.Equal(t, uint64(2), second.Token)

	select {
	case first := <-firstDone:
		assert.False(t, first.published)
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	// Поздний ответ первого запроса не перетёр результат второго
	state := session.State()
	assert.Equal(t, StateReady, state.State)
	assert.Equal(t, uint64(2), state.Token)
}

func TestSession_CloseDiscardsLateResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	exec := executorFunc(func(_ context.Context, _ *Request) (*Response, error) {
		close(started)
		<-release
		return responseWithSlots(true), nil
	})

	var mu sync.Mutex
	var published []SessionState
	session := NewSession(exec, func(s Snapshot) {
		mu.Lock()
		published = append(published, s.State)
		mu.Unlock()
	})

	done := make(chan bool, 1)
	go func() {
		_, ok := session.Load(context.Background(), &Request{CaregiverID: 1})
		done <- ok
	}()
	<-started

	session.Close()
	close(release)

	assert.False(t, <-done)
	assert.Equal(t, StateLoading, session.State().State)

	_, ok := session.Load(context.Background(), &Request{CaregiverID: 1})
	assert.False(t, ok)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []SessionState{StateLoading}, published)
}

func TestSession_States(t *testing.T) {
	tests := []struct {
		name          string
		resp          *Response
		err           error
		wantState     SessionState
		wantRetryable bool
	}{
		{name: "ready", resp: responseWithSlots(true), wantState: StateReady},
		{name: "no openings", resp: responseWithSlots(false), wantState: StateEmpty},
		{name: "bookings down", err: ErrBookingsUnavailable, wantState: StateError, wantRetryable: true},
		{name: "not found", err: ErrCaregiverNotFound, wantState: StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(executorFunc(func(context.Context, *Request) (*Response, error) {
				return tt.resp, tt.err
			}), nil)

			snapshot, ok := session.Load(context.Background(), &Request{CaregiverID: 1})
			require.True(t, ok)
			assert.Equal(t, tt.wantState, snapshot.State)
			assert.Equal(t, tt.wantRetryable, snapshot.Retryable)
			assert.Equal(t, snapshot, session.State())
		})
	}
}

func TestSession_OnChangeCanReadState(t *testing.T) {
	var session *Session
	var seen []Snapshot
	session = NewSession(executorFunc(func(context.Context, *Request) (*Response, error) {
		return responseWithSlots(true), nil
	}), func(Snapshot) {
		seen = append(seen, session.State())
	})

	done := make(chan Snapshot, 1)
	go func() {
		snapshot, _ := session.Load(context.Background(), &Request{CaregiverID: 1})
		done <- snapshot
	}()

	select {
	case snapshot := <-done:
		assert.Equal(t, StateReady, snapshot.State)
	case <-time.After(2 * time.Second):
		t.Fatal("Load blocked while subscriber read the session state")
	}

	require.Len(t, seen, 2)
	assert.Equal(t, StateLoading, seen[0].State)
	assert.Equal(t, StateReady, seen[1].State)
}

func TestSession_NilResponseIsError(t *testing.T) {
	session := NewSession(executorFunc(func(context.Context, *Request) (*Response, error) {
		return nil, nil
	}), nil)

	snapshot, ok := session.Load(context.Background(), &Request{CaregiverID: 1})
	require.True(t, ok)
	assert.Equal(t, StateError, snapshot.State)
	assert.ErrorIs(t, snapshot.Err, ErrInternal)
	assert.False(t, snapshot.Retryable)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "empty", StateEmpty.String())
}
