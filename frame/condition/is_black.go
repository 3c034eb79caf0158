// is_black.go implements a condition that checks if a frame is black.

package condition

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/blackframe/blackness"
	"github.com/xaionaro-go/blackframe/frame"
)

type IsBlack struct {
	Classifier *blackness.Classifier
}

var _ Condition = (*IsBlack)(nil)

func NewIsBlack(threshold float64) *IsBlack {
	return &IsBlack{
		Classifier: blackness.NewClassifier(threshold),
	}
}

func (v *IsBlack) String() string {
	return fmt.Sprintf("IsBlack(%s)", v.Classifier)
}

func (v *IsBlack) Match(
	ctx context.Context,
	input frame.Input,
) bool {
	return v.Classifier.IsBlack(ctx, input)
}
