// Package types contains the types shared by multiple packages of blackframe.
package types

import (
	"context"
	"fmt"
)

type Condition[T any] interface {
	fmt.Stringer
	Match(context.Context, T) bool
}
