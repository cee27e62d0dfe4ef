// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rayleigh minimizes the Rayleigh quotient xᵀAᵀAx / xᵀx with
// gradient descent or BFGS, both driven by an exact line search.
package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := newRootCommand().Execute(); err != nil {
		klog.ErrorS(err, "rayleigh failed")
		klog.Flush()
		os.Exit(1)
	}
}
