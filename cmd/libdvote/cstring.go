//go:build cgo

package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// cstr names a C string for Go code in this package that cannot import "C",
// such as tests.
type cstr = *C.char

// newCString copies s into C memory owned by the caller. Release it with
// freeCString; free_cstr only accepts strings returned by this library.
func newCString(s string) cstr { return C.CString(s) }

func freeCString(p cstr) { C.free(unsafe.Pointer(p)) }

// goText returns the text behind p, or "" for NULL.
func goText(p cstr) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}
