// condition.go defines the Condition interface for filtering decoded video frames.

// Package condition provides various conditions for classifying and
// filtering decoded video frames.
package condition

import (
	"github.com/xaionaro-go/blackframe/frame"
	"github.com/xaionaro-go/blackframe/types"
)

type Condition = types.Condition[frame.Input]
