package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FetchPrice(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type MockPriceWriter struct {
	mock.Mock
}

func (m *MockPriceWriter) UpsertLatest(ctx context.Context, asset string, price float64) error {
	args := m.Called(ctx, asset, price)
	return args.Error(0)
}

func TestScheduler_RefreshStoresFetchedPrice(t *testing.T) {
	t.Parallel()

	source := new(MockPriceSource)
	source.On("FetchPrice", mock.Anything).Return(65000.5, nil)

	writer := new(MockPriceWriter)
	writer.On("UpsertLatest", mock.Anything, "BTC-USD", 65000.5).Return(nil)

	scheduler := NewScheduler(source, writer, "BTC-USD", 5*time.Minute, newTestLogger())
	scheduler.refresh(context.Background())

	source.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestScheduler_FetchFailureSkipsStore(t *testing.T) {
	t.Parallel()

	source := new(MockPriceSource)
	source.On("FetchPrice", mock.Anything).Return(0.0, assert.AnError)

	writer := new(MockPriceWriter)

	scheduler := NewScheduler(source, writer, "BTC-USD", 5*time.Minute, newTestLogger())
	scheduler.refresh(context.Background())

	writer.AssertNotCalled(t, "UpsertLatest", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_StoreFailureIsTickLocal(t *testing.T) {
	t.Parallel()

	source := new(MockPriceSource)
	source.On("FetchPrice", mock.Anything).Return(100.0, nil)

	writer := new(MockPriceWriter)
	writer.On("UpsertLatest", mock.Anything, "BTC-USD", 100.0).Return(assert.AnError).Once()
	writer.On("UpsertLatest", mock.Anything, "BTC-USD", 100.0).Return(nil).Once()

	scheduler := NewScheduler(source, writer, "BTC-USD", 5*time.Minute, newTestLogger())

	// A failed tick must not affect the next one.
	scheduler.refresh(context.Background())
	scheduler.refresh(context.Background())

	writer.AssertExpectations(t)
}
