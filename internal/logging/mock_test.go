package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	var logger Logger = mock

	logger.Info("start")
	child := logger.WithField(FieldFile, "a.xml")
	child.Warn("skipped", F(FieldOperation, "export"))
	child.WithError(errors.New("bad")).Error("failed")

	entries := mock.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []Field{{Key: FieldFile, Value: "a.xml"}, {Key: FieldOperation, Value: "export"}}, entries[1].Fields)
	assert.EqualError(t, entries[2].Error, "bad")
	assert.True(t, mock.HasEntry("WARN", "skipped"))
	assert.Len(t, mock.EntriesByLevel("ERROR"), 1)

	v, ok := mock.Field("failed", FieldFile)
	assert.True(t, ok)
	assert.Equal(t, "a.xml", v)

	mock.Clear()
	assert.Empty(t, mock.Entries())
}

func TestMockLogger_ParentFieldsUnchanged(t *testing.T) {
	mock := NewMockLogger()
	a := mock.WithField("k", 1)
	_ = a.WithField("other", 2)
	a.Info("msg")

	entries := mock.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []Field{{Key: "k", Value: 1}}, entries[0].Fields)
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	mock := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			mock.WithField(FieldWorkers, n).Debug("tick")
		}(i)
	}
	wg.Wait()
	assert.Len(t, mock.Entries(), 20)
}

func TestMockLogger_ZeroValue(t *testing.T) {
	var mock MockLogger
	mock.Fatalf("exit %d", 1)
	assert.True(t, mock.HasEntry("FATAL", "exit 1"))
}
