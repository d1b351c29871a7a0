package history

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirosfoundation/go-intacct/pkg/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Empty(t *testing.T) {
	log := NewLog()

	assert.Equal(t, 0, log.Len())
	_, ok := log.Last()
	assert.False(t, ok)
	assert.Empty(t, log.All())
}

func TestLog_AppendAndLast(t *testing.T) {
	log := NewLog()

	log.Append(Entry{ControlID: "sessionProvider", Functions: []string{"getAPISession"}, Response: &message.Response{}})
	log.Append(Entry{ControlID: "req-2", Functions: []string{"create"}, Err: errors.New("boom")})

	require.Equal(t, 2, log.Len())
	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "req-2", last.ControlID)
	assert.False(t, last.Succeeded())

	all := log.All()
	require.Len(t, all, 2)
	assert.Equal(t, "sessionProvider", all[0].ControlID)
	assert.True(t, all[0].Succeeded())
}

func TestLog_AllReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append(Entry{ControlID: "a"})

	all := log.All()
	all[0].ControlID = "mutated"

	last, _ := log.Last()
	assert.Equal(t, "a", last.ControlID)
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(Entry{StartedAt: time.Now()})
			_ = log.Len()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, log.Len())
}
