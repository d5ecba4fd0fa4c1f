// Package diag prints diagnostic dumps of error chains, used only in
// -debug mode since a shell running a line editor in raw mode must
// never interleave ordinary output with diagnostics, grounded on
// pkg/fmtt's PrintErrChain/PrintErrChainDebug.
package diag

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// PrintErrChain walks err's Unwrap chain, printing each layer's
// concrete type and message.
func PrintErrChain(w io.Writer, err error) {
	if err == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		fmt.Fprintf(w, "[%d] %T: %v\n", i, e, e)
	}
}

// PrintErrChainDebug walks err's Unwrap chain like PrintErrChain, and
// additionally spew.Dumps each layer and reflects over its struct
// fields — used when a Launch or plan-build error needs a deeper look
// than the one-line message the shell prints to the user.
func PrintErrChainDebug(w io.Writer, err error) {
	for i := 0; err != nil; err = errors.Unwrap(err) {
		fmt.Fprintf(w, "[%d] %T\n", i, err)
		fmt.Fprintf(w, "   Error(): %v\n", err)

		spew.Fdump(w, err)

		rv := reflect.ValueOf(err)
		rt := reflect.TypeOf(err)
		if rt.Kind() == reflect.Ptr {
			rv = rv.Elem()
			rt = rt.Elem()
		}
		if rt.Kind() == reflect.Struct {
			for j := 0; j < rt.NumField(); j++ {
				f := rt.Field(j)
				v := rv.Field(j)
				if v.CanInterface() {
					fmt.Fprintf(w, "   Field %s (%s): %+v\n", f.Name, f.Type, v.Interface())
				}
			}
		}

		if u, ok := err.(interface{ Unwrap() error }); ok {
			fmt.Fprintf(w, "   Has Unwrap(): %T\n", u.Unwrap())
		}
		if c, ok := err.(interface{ Cause() error }); ok {
			fmt.Fprintf(w, "   Has Cause(): %T\n", c.Cause())
		}

		i++
	}
}
