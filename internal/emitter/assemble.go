// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// header is the standard Go "generated file" marker, combined with the
// repository's license banner the same way every hand-written file in
// this tree carries it.
const header = `// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Code generated by cpacsgen. DO NOT EDIT.

`

// assembleFile wraps body in a package clause and import block, then
// runs it through go/format so the emitted source matches what gofmt
// would produce by hand -- the same confidence check the teacher's own
// cmd/gowsdl/main.go applies to its generated types. If formatting
// fails the raw, unformatted source is returned instead of dropping the
// file: a syntax bug in the emitter should surface as a build failure
// downstream, not as a silently missing file.
func assembleFile(pkg, body string, customImports []string) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	imports := collectImports(body, customImports)
	if len(imports) > 0 {
		b.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&b, "\t%s\n", imp)
		}
		b.WriteString(")\n\n")
	}
	b.WriteString(body)

	src := b.String()
	formatted, err := format.Source([]byte(src))
	if err != nil {
		log.WithError(err).Warn("generated source did not gofmt cleanly, writing unformatted")
		return src
	}
	return string(formatted)
}

// collectImports decides the import block for one generated file:
// stdlib/ecosystem packages referenced by the generated helper calls
// this package knows it emits (fmt, the cpacsxml facade, logrus, time),
// detected by substring since the body is plain generated text rather
// than an AST, plus whatever customImports the field-type table named.
func collectImports(body string, customImports []string) []string {
	var out []string
	if strings.Contains(body, "fmt.") {
		out = append(out, `"fmt"`)
	}
	if strings.Contains(body, "cpacsxml.") {
		out = append(out, `"github.com/cpacsgen/cpacsgen/internal/cpacsxml"`)
	}
	if strings.Contains(body, "time.Time") {
		out = append(out, `"time"`)
	}
	if strings.Contains(body, "strings.") {
		out = append(out, `"strings"`)
	}
	if strings.Contains(body, "log.") {
		out = append(out, `log "github.com/sirupsen/logrus"`)
	}
	seen := make(map[string]bool, len(out))
	for _, imp := range out {
		seen[imp] = true
	}
	for _, imp := range customImports {
		quoted := fmt.Sprintf("%q", imp)
		if !seen[quoted] {
			seen[quoted] = true
			out = append(out, quoted)
		}
	}
	sort.Strings(out)
	return out
}
