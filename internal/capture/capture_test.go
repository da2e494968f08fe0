package capture

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStart_DeliversChunks runs a shell one-liner that writes 20 bytes
// to stdout and exits, verifying Start reassembles it into full
// chunkSize chunks plus one short trailing chunk.
func TestStart_DeliversChunks(t *testing.T) {
	var mu sync.Mutex
	var chunks [][]byte

	stop, err := Start("/bin/sh", []string{"-c", "printf '%020d' 0"}, 8, func(c []byte) {
		mu.Lock()
		defer mu.Unlock()
		chunks = append(chunks, append([]byte(nil), c...))
	})
	require.NoError(t, err)
	defer stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		return total == 20
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, chunks, 3) // 8 + 8 + 4
	assert.Len(t, chunks[0], 8)
	assert.Len(t, chunks[1], 8)
	assert.Len(t, chunks[2], 4)
}

func TestStart_BadExecutable(t *testing.T) {
	_, err := Start("/no/such/binary-adsb1090-test", nil, 8, func([]byte) {})
	assert.Error(t, err)
}
