// Package repository is the data access layer of the kernel.
//
// A repository comes in two capability tiers:
// ViewRepository offers read only access to a backing store and
// Repository additionally offers to insert, update, and delete entities.
//
// Two implementations are available out of the box.
// MemoryRepository keeps the data in a map owned by the repository and can
// optionally persist it with a Store, e.g. a JSONStore or a BoltStore.
// EnvRepository is a read only view on the environment variables of the process.
//
// Looking up a key that does not exist is not an error: GetOne reports it via its ok value.
package repository
