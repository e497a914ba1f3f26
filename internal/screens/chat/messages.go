package chat

import (
	"time"

	"github.com/abhisek/tutoriz/internal/planner"
)

// planDoneMsg carries the planner outcome for the in-flight query.
type planDoneMsg struct {
	Result *planner.Result
	Err    error
}

// spinnerTickMsg is sent at short intervals to animate the thinking spinner.
type spinnerTickMsg time.Time
