package models

// Timer tracks how long ago something was last activated and how often it
// has been used. LastUsed is seeded with the owner's cooldown so a fresh
// action starts ready; overshooting the cooldown is legal and just means
// "ready for a while now".
type Timer struct {
	LastUsed  int
	TimesUsed int
}

// Tick advances the clock by the elapsed ticks.
func (t *Timer) Tick(ticks int) {
	t.LastUsed += ticks
}

// Activate resets the clock and counts the use. This is the only way
// TimesUsed increases or LastUsed returns to zero.
func (t *Timer) Activate() {
	t.LastUsed = 0
	t.TimesUsed++
}
