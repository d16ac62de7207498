// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// helloworld greets everyone named on the command line, built on a
// hand-written option table.
//
//	helloworld [-c COUNT] [-i INTERVAL] [--shout] NAME...
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yeetrun/getopt/pkg/getopt"
)

func main() {
	var (
		count    int64 = 1
		interval float64
		shout    bool
	)
	p := getopt.New([]*getopt.Option{
		{Short: 'c', Long: "count", NeedArg: true, Consumer: getopt.Int(&count), Help: "Greet this many times"},
		{Short: 'i', Long: "interval", NeedArg: true, Consumer: getopt.Float(&interval), Help: "Seconds between greetings"},
		{Long: "shout", Consumer: getopt.Flag(&shout), Help: "Greet loudly"},
	})
	p.ErrorOutput = getopt.ColorErrors(os.Stderr)
	n := p.Process(os.Args)
	if p.Failed() {
		os.Exit(2)
	}

	names := os.Args[n:]
	if len(names) == 0 {
		names = []string{"World"}
	}
	for i := int64(0); i < count; i++ {
		if i > 0 {
			time.Sleep(time.Duration(interval * float64(time.Second)))
		}
		msg := fmt.Sprintf("Hello, %s!", strings.Join(names, ", "))
		if shout {
			msg = strings.ToUpper(msg)
		}
		fmt.Println(msg)
	}
}
