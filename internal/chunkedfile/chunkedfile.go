// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile provides utilities for testing that source code
// errors are reported in the appropriate places.
//
// A chunked file consists of several chunks of input text separated by
// "---" lines. Each chunk is an input to the program under test, such
// as the resolver or the interpreter. Lines containing "###" are
// expectations of failure: the following text is a Go string literal
// denoting a regular expression that should match the failure message
// reported on that line.
//
// Example:
//
//	var x = 1 + "one"; ### "two numbers or two strings"
//	---
//	var x = 1;
//	print x;
//
// A client test feeds each chunk into the program under test, calls
// chunk.GotError for each error that actually occurred, then calls
// chunk.Done. Any discrepancy between the actual and expected errors
// is reported through the client's reporter, typically a testing.T.
package chunkedfile

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// A Chunk is one portion of a chunked source file, together with the
// errors expected when processing it.
type Chunk struct {
	Source   string
	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read parses the chunked file named by filename and returns its
// chunks. Each chunk's Source is padded with leading newlines so that
// its line numbers match the original file, and each "###" expectation
// is cut from the end of its line. Malformed expectations are
// reported through report.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}

	var chunks []Chunk
	linenum := 1
	for _, text := range strings.Split(string(data), "\n---\n") {
		pad := strings.Repeat("\n", linenum-1)

		wantErrs := make(map[int]*regexp.Regexp)
		lines := strings.Split(text, "\n")
		for j, line := range lines {
			if i := strings.Index(line, "###"); i >= 0 {
				lines[j] = line[:i] // the expectation is not part of the program
				quoted := strings.TrimSpace(line[i+len("###"):])
				pattern, err := strconv.Unquote(quoted)
				if err != nil {
					report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, quoted)
					linenum++
					continue
				}
				rx, err := regexp.Compile(pattern)
				if err != nil {
					report.Errorf("\n%s:%d: %v", filename, linenum, err)
					linenum++
					continue
				}
				wantErrs[linenum] = rx
			}
			linenum++
		}

		linenum++ // the --- separator line

		src := pad + strings.Join(lines, "\n")
		chunks = append(chunks, Chunk{src, filename, report, wantErrs})
	}
	return chunks
}

// GotError records that the program under test reported an error at
// linenum. Errors that were not expected, or that do not match the
// expected pattern, are reported to the chunk's reporter.
func (chunk *Chunk) GotError(linenum int, msg string) {
	rx, ok := chunk.wantErrs[linenum]
	if !ok {
		chunk.report.Errorf("\n%s:%d: unexpected error: %v", chunk.filename, linenum, msg)
		return
	}
	delete(chunk.wantErrs, linenum)
	if !rx.MatchString(msg) {
		chunk.report.Errorf("\n%s:%d: error %q does not match pattern %q", chunk.filename, linenum, msg, rx)
	}
}

// Done reports expected errors that did not occur.
func (chunk *Chunk) Done() {
	for linenum, rx := range chunk.wantErrs {
		chunk.report.Errorf("\n%s:%d: expected error matching %q", chunk.filename, linenum, rx)
	}
}
