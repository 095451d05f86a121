package metrics

import (
	"log"
	"time"

	"github.com/san-kum/orrery/internal/frame"
	"golang.org/x/time/rate"
)

// CapLog logs capped callbacks at most once per interval and folds the
// ones in between into a count on the next line. It uses the callback's
// timestamp, not the wall clock.
type CapLog struct {
	logger  *log.Logger
	limiter *rate.Limiter
	skipped int
}

// NewCapLog logs to logger, or the standard logger when logger is nil.
func NewCapLog(logger *log.Logger, every time.Duration) *CapLog {
	if logger == nil {
		logger = log.Default()
	}
	return &CapLog{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

func (c *CapLog) ObserveFrame(now time.Time, res frame.Result, st frame.Stats) {
	if !res.Capped {
		return
	}
	if !c.limiter.AllowN(now, 1) {
		c.skipped++
		return
	}
	if c.skipped > 0 {
		c.logger.Printf("frame %d capped at %d steps, dropped %v (%d more since last report)",
			st.Frames, res.Steps, res.Dropped, c.skipped)
	} else {
		c.logger.Printf("frame %d capped at %d steps, dropped %v", st.Frames, res.Steps, res.Dropped)
	}
	c.skipped = 0
}
