// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox_test

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"go.loxlang.net/lox"
)

type scriptTest struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Want   string `yaml:"want"`
	Err    string `yaml:"err"`
}

// TestScripts runs the programs in testdata/scripts.yaml and compares
// everything they print against the manifest.
func TestScripts(t *testing.T) {
	data, err := os.ReadFile("testdata/scripts.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var tests []scriptTest
	if err := yaml.Unmarshal(data, &tests); err != nil {
		t.Fatal(err)
	}
	if len(tests) == 0 {
		t.Fatal("no scripts in manifest")
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			interp := lox.NewInterpreter()
			var buf bytes.Buffer
			interp.Print = func(_ *lox.Interpreter, msg string) {
				fmt.Fprintln(&buf, msg)
			}
			err := lox.ExecFile(interp, test.Name+".lox", test.Source)

			if test.Err != "" {
				if err == nil {
					t.Fatalf("ran without error, want %q", test.Err)
				}
				if !strings.Contains(err.Error(), test.Err) {
					t.Fatalf("error %q does not contain %q", err, test.Err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != test.Want {
				t.Errorf("output:\n%s\nwant:\n%s", got, test.Want)
			}
		})
	}
}
