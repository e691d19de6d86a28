package report

import (
	"context"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) table(args mock.Arguments) (domain.ResultTable, error) {
	return args.Get(0).(domain.ResultTable), args.Error(1)
}

func (m *mockStore) Volatility(ctx context.Context) (domain.ResultTable, error) {
	return m.table(m.Called(ctx))
}

func (m *mockStore) CumulativeReturns(ctx context.Context) (domain.ResultTable, error) {
	return m.table(m.Called(ctx))
}

func (m *mockStore) Correlation(ctx context.Context) (domain.ResultTable, error) {
	return m.table(m.Called(ctx))
}

func (m *mockStore) Months(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) GainersLosers(ctx context.Context, month string) (domain.ResultTable, error) {
	return m.table(m.Called(ctx, month))
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) ReadCSV(ctx context.Context, location string) (domain.ResultTable, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(domain.ResultTable), args.Error(1)
}
