package quiz

// Ledger is the per-question answer record. An entry is written at most once.
type Ledger struct {
	chosen []int // 0 = unanswered, otherwise the 1-based option
}

// NewLedger returns a ledger with n unanswered entries.
func NewLedger(n int) *Ledger {
	return &Ledger{chosen: make([]int, n)}
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.chosen)
}

// Answer returns the chosen option for index and whether it has been answered.
func (l *Ledger) Answer(index int) (int, bool) {
	if index < 0 || index >= len(l.chosen) {
		return 0, false
	}
	v := l.chosen[index]
	return v, v != 0
}

// Record locks in option for index. It returns false when the index is out
// of range, the option is not a positive position, or the entry is already set.
func (l *Ledger) Record(index, option int) bool {
	if index < 0 || index >= len(l.chosen) || option <= 0 {
		return false
	}
	if l.chosen[index] != 0 {
		return false
	}
	l.chosen[index] = option
	return true
}

// Answered counts locked-in entries.
func (l *Ledger) Answered() int {
	n := 0
	for _, v := range l.chosen {
		if v != 0 {
			n++
		}
	}
	return n
}
