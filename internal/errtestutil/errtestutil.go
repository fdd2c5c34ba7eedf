// Package errtestutil contains test assertions for error slices.
package errtestutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/iver-wharf/wharf-pages/internal/errutil"
)

// RequireContainsScopedErr fails the test if no error in the slice Is the
// given error with the given scope.
func RequireContainsScopedErr(t *testing.T, errs errutil.Slice, scope string, err error) {
	t.Helper()
	for _, e := range errs {
		if errors.Is(e, err) && errutil.AsScope(e) == scope {
			return
		}
	}
	t.Fatalf("\nexpected contains error: %q (scope %q)\nactual: (len=%d)\n%s",
		err, scope, len(errs), formatSlice("  - ", errs))
}

// RequireNoErr fails the test if the error slice is not empty.
func RequireNoErr(t *testing.T, errs errutil.Slice) {
	t.Helper()
	if len(errs) == 0 {
		return
	}
	t.Fatalf("\nexpected no errors\nactual: (len=%d)\n%s",
		len(errs), formatSlice("  - ", errs))
}

func formatSlice(prefix string, errs errutil.Slice) string {
	var sb strings.Builder
	for i, err := range errs {
		if scope := errutil.AsScope(err); scope != "" {
			fmt.Fprintf(&sb, "%s[i=%d, scope=%s] %s\n", prefix, i, scope, err)
		} else {
			fmt.Fprintf(&sb, "%s[i=%d] %s\n", prefix, i, err)
		}
	}
	return sb.String()
}
