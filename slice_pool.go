package nbt

import "github.com/delaneyj/toolbelt"

// maxPooledEntries bounds the capacity of scratch slices kept in the pool.
const maxPooledEntries = 1024

var entryPool = toolbelt.New(func() []Entry { return make([]Entry, 0, 16) })

func getEntrySlice() []Entry {
	return entryPool.Get()[:0]
}

func putEntrySlice(s []Entry) {
	if cap(s) > maxPooledEntries {
		return
	}
	clear(s)
	entryPool.Put(s[:0])
}
