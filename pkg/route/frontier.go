package route

// entry is one frontier element: a state plus the tentative cost it was
// pushed with. Improvements re-push the state instead of repositioning it;
// stale copies are skipped on pop against the finalized set.
type entry struct {
	state State
	cost  int
}

// frontier is a binary min-heap of entries ordered by tentative cost,
// driven through container/heap.
type frontier []entry

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}
