// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

// scalarConv names the cpacsxml conversion pair for one Go scalar type,
// keyed by the Go type name the builder leaves in Field.TypeName after
// resolving it through the xsdTypes table.
type scalarConv struct {
	Parse  string
	Format string
}

var scalarConvs = map[string]scalarConv{
	"string":    {"cpacsxml.ParseString", "cpacsxml.FormatString"},
	"bool":      {"cpacsxml.ParseBool", "cpacsxml.FormatBool"},
	"int8":      {"cpacsxml.ParseInt8", "cpacsxml.FormatInt8"},
	"int16":     {"cpacsxml.ParseInt16", "cpacsxml.FormatInt16"},
	"int32":     {"cpacsxml.ParseInt32", "cpacsxml.FormatInt32"},
	"int64":     {"cpacsxml.ParseInt64", "cpacsxml.FormatInt64"},
	"int":       {"cpacsxml.ParseInt", "cpacsxml.FormatInt"},
	"uint8":     {"cpacsxml.ParseUint8", "cpacsxml.FormatUint8"},
	"uint16":    {"cpacsxml.ParseUint16", "cpacsxml.FormatUint16"},
	"uint32":    {"cpacsxml.ParseUint32", "cpacsxml.FormatUint32"},
	"uint64":    {"cpacsxml.ParseUint64", "cpacsxml.FormatUint64"},
	"float32":   {"cpacsxml.ParseFloat32", "cpacsxml.FormatFloat32"},
	"float64":   {"cpacsxml.ParseFloat64", "cpacsxml.FormatFloat64"},
	"time.Time": {"cpacsxml.ParseTime", "cpacsxml.FormatTime"},
}

// convFor returns the cpacsxml conversion pair for goType, one of the Go
// scalar types the generator itself knows how to parse/format. Any
// other type name (such as a custom-typed substitution) falls through
// to the string pair, since a table-driven substitution is, by
// construction, outside the generator's knowledge of the target type's
// shape.
func convFor(goType string) scalarConv {
	if c, ok := scalarConvs[goType]; ok {
		return c
	}
	return scalarConv{"cpacsxml.ParseString", "cpacsxml.FormatString"}
}
