package moodbites

import (
	"fmt"
	"io"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Dump pretty-prints values to w prefixed with the caller's file:line.
func Dump(w io.Writer, v ...any) {
	_, file, line, _ := runtime.Caller(1)
	fmt.Fprintf(w, "%s:%d:\n", file, line)
	dumpConfig.Fdump(w, v...)
}
