// static.go implements a condition that always returns a static boolean value.

package condition

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/blackframe/frame"
)

type Static bool

var _ Condition = (Static)(false)

func (v Static) String() string {
	return fmt.Sprintf("%t", v)
}

func (v Static) Match(context.Context, frame.Input) bool {
	return (bool)(v)
}
