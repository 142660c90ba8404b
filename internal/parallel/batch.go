package parallel

// ForEach calls fn(i) for every i in [0, n) on the pool and waits for all
// calls to return. With a nil or closed pool the calls run in order on the
// calling goroutine.
func ForEach(p *WorkerPool, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p == nil || !p.IsRunning() || n == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	work := make([]func(), n)
	for i := range work {
		work[i] = func() { fn(i) }
	}
	if !p.ExecuteAll(work) {
		for i := range n {
			fn(i)
		}
	}
}
