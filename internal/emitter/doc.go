// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package emitter walks a resolved typesystem.TypeSystem and produces,
// per class, one Go source file holding both the struct declaration and
// its method bodies (the declaration/implementation split of the
// original C++ tool collapses into Go's single-file, import-based
// model); per enum, one Go source file with the scoped type, its
// constants and its string conversions. It also decides includes,
// parent-pointer shape, UID registration hooks, choice validators and
// tree manipulators, and drives internal/filesink to write the result.
package emitter
