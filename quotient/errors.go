// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quotient

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument reports a malformed input supplied at construction.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDimension reports a vector whose length does not match the problem dimension.
	ErrDimension = errors.New("dimension mismatch")
	// ErrZeroPoint reports an evaluation at x with xᵀx = 0 where f is undefined.
	ErrZeroPoint = errors.New("point has zero norm")
	// ErrDegenerateDirection reports a line search along d = 0 or along a line
	// where every coefficient of the stationarity equation vanishes.
	ErrDegenerateDirection = errors.New("degenerate search direction")
)
