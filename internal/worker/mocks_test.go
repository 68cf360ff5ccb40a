package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing. Every prepared
// batch is recorded.
type MockClickHouseConn struct {
	driver.Conn
	PrepareErr error
	SendErr    error
	AppendErr  func(row []interface{}) error

	mu      sync.Mutex
	Batches []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	b := &MockBatch{Query: query, sendErr: m.SendErr, appendErr: m.AppendErr}
	m.mu.Lock()
	m.Batches = append(m.Batches, b)
	m.mu.Unlock()
	return b, nil
}

// SentRows returns every row of every successfully sent batch.
func (m *MockClickHouseConn) SentRows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows [][]interface{}
	for _, b := range m.Batches {
		if b.Sent {
			rows = append(rows, b.Appended...)
		}
	}
	return rows
}

// MockBatch implements driver.Batch for testing
type MockBatch struct {
	driver.Batch
	Query    string
	Appended [][]interface{}
	Sent     bool
	Aborted  bool

	sendErr   error
	appendErr func(row []interface{}) error
}

func (b *MockBatch) Append(v ...interface{}) error {
	if b.appendErr != nil {
		if err := b.appendErr(v); err != nil {
			return err
		}
	}
	b.Appended = append(b.Appended, v)
	return nil
}

func (b *MockBatch) Rows() int {
	return len(b.Appended)
}

func (b *MockBatch) Send() error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.Sent = true
	return nil
}

func (b *MockBatch) Abort() error {
	b.Aborted = true
	return nil
}
