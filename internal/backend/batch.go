package backend

import (
	"sort"
	"time"
)

// batch collects changed directories until the stream has been quiet for
// interval, so a burst of writes produces one refresh per directory.
type batch struct {
	interval time.Duration
	paths    map[string]struct{}
	timer    *time.Timer
}

func newBatch(interval time.Duration) *batch {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &batch{interval: interval, paths: make(map[string]struct{})}
}

func (b *batch) add(path string) {
	b.paths[path] = struct{}{}
	if b.timer == nil {
		b.timer = time.NewTimer(b.interval)
		return
	}
	if !b.timer.Stop() {
		select {
		case <-b.timer.C:
		default:
		}
	}
	b.timer.Reset(b.interval)
}

// ready fires once the batch is due; nil while empty.
func (b *batch) ready() <-chan time.Time {
	if b.timer == nil {
		return nil
	}
	return b.timer.C
}

func (b *batch) drain() []string {
	paths := make([]string, 0, len(b.paths))
	for p := range b.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	b.paths = make(map[string]struct{})
	b.timer = nil
	return paths
}

func (b *batch) stop() {
	if b.timer != nil {
		b.timer.Stop()
	}
}
