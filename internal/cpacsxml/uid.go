// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cpacsxml

// UIDManager is the runtime registry generated classes register
// themselves (and their UID-reference fields) against. It is, like
// Document, a contract owned by the consumer of generated code, not an
// implementation this repository ships: the generator only needs to
// know the method set it may call.
type UIDManager interface {
	// RegisterObject associates uid with obj, so later lookups and
	// reference validation can find it.
	RegisterObject(uid string, obj any) error
	// TryUnregisterObject removes uid's registration if present; it is
	// a no-op if uid was never registered.
	TryUnregisterObject(uid string)
	// UpdateObjectUID moves obj's registration from oldUID to newUID,
	// used when a uID attribute is renamed after initial registration.
	UpdateObjectUID(oldUID, newUID string) error
	// RegisterReference records that holder refers to uid, so a later
	// rename of uid can be propagated via NotifyUIDChange.
	RegisterReference(uid string, holder any)
	// TryUnregisterReference removes a previously registered reference
	// from holder to uid; a no-op if it was never registered.
	TryUnregisterReference(uid string, holder any)
}
