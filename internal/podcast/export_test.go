package podcast

import "time"

// SetProcessorClock overrides the processor's clock in tests.
func SetProcessorClock(p *Processor, now func() time.Time) {
	p.now = now
}
