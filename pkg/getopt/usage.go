// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"strings"
)

// Usage formats an OPTIONS section listing every named option in opts with
// its Help text. The catch-all is left out.
func Usage(opts []*Option) string {
	var b strings.Builder
	b.WriteString("OPTIONS:\n")
	for _, o := range opts {
		if o.IsCatchAll() {
			continue
		}
		flagStr := "    " + usageNames(o)
		if o.Help != "" {
			b.WriteString(fmt.Sprintf("%-28s %s", flagStr, o.Help))
		} else {
			b.WriteString(flagStr)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func usageNames(o *Option) string {
	var s string
	switch {
	case o.Short != 0 && o.Long != "":
		s = fmt.Sprintf("-%c, --%s", o.Short, o.Long)
	case o.Short != 0:
		s = fmt.Sprintf("-%c", o.Short)
	default:
		s = "    --" + o.Long
	}
	if o.Consumer == nil {
		return s
	}
	switch {
	case o.NeedArg && o.Long != "":
		s += "=ARG"
	case o.NeedArg:
		s += " ARG"
	}
	return s
}
