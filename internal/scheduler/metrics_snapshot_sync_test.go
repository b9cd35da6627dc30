package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/nexalink/lead-manager-api/internal/config"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/nexalink/lead-manager-api/internal/usecases/reporting/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T, enabled bool) (*MetricsSnapshotSyncService, *mocks.MockReporter) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockReporter := mocks.NewMockReporter(ctrl)

	appConfig := &config.Config{
		MetricsSnapshotSync: config.MetricsSnapshotSync{
			CronSchedule: "*/10 * * * *",
			Enabled:      enabled,
			TrendDays:    30,
		},
	}

	return NewMetricsSnapshotSyncService(mockReporter, appConfig), mockReporter
}

func TestMetricsSnapshotSyncService_SyncSnapshot(t *testing.T) {
	service, mockReporter := newTestSyncService(t, true)

	mockReporter.EXPECT().
		SaveSnapshot().
		Return(&domain.MetricsSnapshot{ID: 1, CreatedAt: time.Now()}, nil)

	service.syncSnapshot()

	assert.False(t, service.lastSyncStartedAt.IsZero())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestMetricsSnapshotSyncService_SyncSnapshot_Error(t *testing.T) {
	service, mockReporter := newTestSyncService(t, true)

	mockReporter.EXPECT().SaveSnapshot().Return(nil, errors.New("connection refused"))

	service.syncSnapshot()

	// A failed run must release the lock and leave the completion mark unset.
	assert.False(t, service.syncRunning)
	assert.True(t, service.lastSyncCompletedAt.IsZero())
}

func TestMetricsSnapshotSyncService_OverlappingRunSkipped(t *testing.T) {
	service, mockReporter := newTestSyncService(t, true)

	// Simulate an in-flight run; the reporter must not be called again.
	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	mockReporter.EXPECT().SaveSnapshot().Times(0)

	service.syncSnapshot()
	service.TriggerManualSync()
}

func TestMetricsSnapshotSyncService_TriggerManualSync(t *testing.T) {
	service, mockReporter := newTestSyncService(t, true)

	done := make(chan struct{})
	mockReporter.EXPECT().
		SaveSnapshot().
		DoAndReturn(func() (*domain.MetricsSnapshot, error) {
			defer close(done)
			return &domain.MetricsSnapshot{ID: 2}, nil
		})

	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manual sync did not run")
	}
}

func TestMetricsSnapshotSyncService_StartDisabled(t *testing.T) {
	service, mockReporter := newTestSyncService(t, false)

	mockReporter.EXPECT().SaveSnapshot().Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, service.Start(ctx))
}

func TestMetricsSnapshotSyncService_GetStatus(t *testing.T) {
	service, _ := newTestSyncService(t, true)

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "*/10 * * * *", status["sync_cron"])
	assert.Equal(t, 30, status["trend_days"])
}
