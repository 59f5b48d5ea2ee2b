// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/beevik/term"
)

func main() {
	fd := int(os.Stdin.Fd())
	interactive := term.IsTerminal(fd)

	if interactive {
		state, err := term.MakeRawInput(fd)
		exitOnError(err)
		defer term.Restore(fd, state)
	}

	mon := NewMonitor(os.Stdin, os.Stdout)
	mon.Run()
}
