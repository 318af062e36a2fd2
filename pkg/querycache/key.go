// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package querycache

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies an entity family. Every cache key starts with its kind,
// and mutations invalidate whole kinds at once.
type Kind string

const (
	// KindComplaints addresses complaint reads.
	KindComplaints Kind = "complaints"

	// KindAgencies addresses agency reads.
	KindAgencies Kind = "agencies"
)

// Key is the cache address for a read: an entity kind plus an optional
// record identifier. ID zero addresses the collection.
type Key struct {
	Kind Kind
	ID   int
}

// CollectionKey returns the key for a kind's full collection.
func CollectionKey(kind Kind) Key {
	return Key{Kind: kind}
}

// RecordKey returns the key for a single record.
func RecordKey(kind Kind, id int) Key {
	return Key{Kind: kind, ID: id}
}

// IsCollection reports whether the key addresses the full collection.
func (k Key) IsCollection() bool {
	return k.ID == 0
}

// String renders the key as "complaints" or "complaints/7".
func (k Key) String() string {
	if k.IsCollection() {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s/%d", k.Kind, k.ID)
}

// parseKey is the inverse of String. Malformed ids degrade to a collection
// key for the whole string, which only ever happens on internal misuse.
func parseKey(id string) Key {
	slash := strings.IndexByte(id, '/')
	if slash < 0 {
		return Key{Kind: Kind(id)}
	}
	n, err := strconv.Atoi(id[slash+1:])
	if err != nil {
		return Key{Kind: Kind(id)}
	}
	return Key{Kind: Kind(id[:slash]), ID: n}
}
