package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/queue"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

type fakeExpirer struct {
	expiredID string
	sweeps    int
	err       error
}

func (f *fakeExpirer) ExpireOne(_ context.Context, _, id string, _ time.Time) (bool, error) {
	f.expiredID = id
	return true, f.err
}

func (f *fakeExpirer) ExpireStale(_ context.Context, _ time.Time) (int64, error) {
	f.sweeps++
	return 3, f.err
}

func TestProcessExpire_LlamaAlCasoDeUso(t *testing.T) {
	f := &fakeExpirer{}
	w := queue.NewInvitationWorker(f, logger.Nop())
	data, err := json.Marshal(queue.InvitationExpirePayload{CompanyID: "c-1", InvitationID: "inv-1"})
	require.NoError(t, err)

	require.NoError(t, w.ProcessExpire(context.Background(), asynq.NewTask(queue.TypeInvitationExpire, data)))
	assert.Equal(t, "inv-1", f.expiredID)
}

func TestProcessExpire_PayloadInvalidoNoSeReintenta(t *testing.T) {
	w := queue.NewInvitationWorker(&fakeExpirer{}, logger.Nop())

	err := w.ProcessExpire(context.Background(), asynq.NewTask(queue.TypeInvitationExpire, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = w.ProcessExpire(context.Background(), asynq.NewTask(queue.TypeInvitationExpire, []byte(`{}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessSweep(t *testing.T) {
	f := &fakeExpirer{}
	w := queue.NewInvitationWorker(f, logger.Nop())

	require.NoError(t, w.ProcessSweep(context.Background(), asynq.NewTask(queue.TypeInvitationSweep, nil)))
	assert.Equal(t, 1, f.sweeps)

	f.err = errors.New("db caída")
	assert.Error(t, w.ProcessSweep(context.Background(), asynq.NewTask(queue.TypeInvitationSweep, nil)))
}
