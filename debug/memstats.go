package debug

// Memory/RSS periodic logger enabled when config.Debug is true. RSS next to Go
// heap stats separates native growth (encoder pipes, audio driver buffers)
// from frame buffers that escaped the pool.

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

// MemSnapshot is one sample of process memory.
type MemSnapshot struct {
	RSS        uint64
	HeapAlloc  uint64
	HeapInuse  uint64
	NumGC      uint32
	Goroutines int
}

// ReadMem samples the current process. RSS is zero when the platform query
// fails; the error is returned alongside the heap figures.
func ReadMem() (MemSnapshot, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	snap := MemSnapshot{
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		NumGC:      ms.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return snap, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return snap, err
	}
	snap.RSS = info.RSS
	return snap, nil
}

// StartMemLogger logs memory stats every interval until ctx is done. RSS
// query failures are logged once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			snap, err := ReadMem()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Debug("memstats",
				slog.Int("goroutines", snap.Goroutines),
				slog.String("rss", humanize.IBytes(snap.RSS)),
				slog.String("heap_alloc", humanize.IBytes(snap.HeapAlloc)),
				slog.Uint64("heap_inuse", snap.HeapInuse),
				slog.Uint64("num_gc", uint64(snap.NumGC)),
			)
		}
	}()
}
