package main

// taskSeq tracks the latest generation of each named exclusive task.
// Starting a task bumps its generation; results carrying an older
// generation are stale and must be discarded rather than merged. This
// is the only coordination the UI needs: all state mutation happens on
// the Bubble Tea update loop, so discarding stale messages is enough to
// keep overlapping refreshes from interleaving.
type taskSeq struct {
	seqs map[string]int
}

func newTaskSeq() *taskSeq {
	return &taskSeq{seqs: make(map[string]int)}
}

// Next starts a new generation of the named task, superseding any
// generation still in flight.
func (t *taskSeq) Next(name string) int {
	t.seqs[name]++
	return t.seqs[name]
}

// IsCurrent reports whether seq is the latest generation of the task.
func (t *taskSeq) IsCurrent(name string, seq int) bool {
	return t.seqs[name] == seq
}
