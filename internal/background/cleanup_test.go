package background

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type mockSweeper struct {
	mu          sync.Mutex
	autoCalls   int
	hardCalls   int
	autoErr     error
	autoDeleted int64
	hardRemoved int64
}

func (m *mockSweeper) AutoCleanupOldItems(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoCalls++
	return m.autoDeleted, m.autoErr
}

func (m *mockSweeper) HardDeleteOldItems(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hardCalls++
	return m.hardRemoved, nil
}

func (m *mockSweeper) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoCalls, m.hardCalls
}

func TestCleanupManager_RunsSweepsOnStartup(t *testing.T) {
	defer goleak.VerifyNone(t)

	sweeper := &mockSweeper{autoDeleted: 3, hardRemoved: 1}
	cm := NewCleanupManager(sweeper, slog.Default(), time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cm.Start(context.Background())
	}()

	// The first run happens before the ticker, so both sweeps should be
	// observable almost immediately.
	assert.Eventually(t, func() bool {
		auto, hard := sweeper.calls()
		return auto == 1 && hard == 1
	}, time.Second, 10*time.Millisecond)

	cm.Stop()
	<-done
}

func TestCleanupManager_AutoFailureDoesNotBlockHardDelete(t *testing.T) {
	defer goleak.VerifyNone(t)

	sweeper := &mockSweeper{autoErr: errors.New("db down")}
	cm := NewCleanupManager(sweeper, slog.Default(), time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cm.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		_, hard := sweeper.calls()
		return hard == 1
	}, time.Second, 10*time.Millisecond)

	cm.Stop()
	<-done
}

func TestCleanupManager_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sweeper := &mockSweeper{}
	cm := NewCleanupManager(sweeper, slog.Default(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		cm.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		auto, _ := sweeper.calls()
		return auto == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup manager did not stop after context cancel")
	}
}

func TestCleanupManager_TicksOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	sweeper := &mockSweeper{}
	cm := NewCleanupManager(sweeper, slog.Default(), 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cm.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		auto, _ := sweeper.calls()
		return auto >= 3
	}, time.Second, 5*time.Millisecond)

	cm.Stop()
	<-done
}
