// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// helloserver serves a greeting, configured through a struct bound with
// getopt.Bind.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/yeetrun/getopt/pkg/getopt"
)

type flags struct {
	Addr     string        `flag:"addr" short:"a" default:":8080" help:"Listen address"`
	Greeting string        `flag:"greeting" short:"g" default:"Hello, world!"`
	Env      bool          `flag:"env" help:"Serve the environment on /env"`
	Timeout  time.Duration `flag:"read-timeout" default:"10s"`
}

func main() {
	var f flags
	opts, err := getopt.Bind(&f)
	if err != nil {
		log.Fatalf("%v", err)
	}
	p := getopt.New(opts)
	p.ErrorOutput = getopt.LogErrors(nil)
	if n := p.Process(os.Args); p.Failed() || n != len(os.Args) {
		log.Fatalf("usage: helloserver [-a ADDR] [-g GREETING] [--env] [--read-timeout D]")
	}

	srv := &http.Server{
		Addr:        f.Addr,
		ReadTimeout: f.Timeout,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if f.Env && r.URL.Path == "/env" {
				fmt.Fprintln(w, os.Environ())
				return
			}
			fmt.Fprintln(w, f.Greeting)
		}),
	}
	log.Printf("listening on %s", f.Addr)
	log.Fatal(srv.ListenAndServe())
}
