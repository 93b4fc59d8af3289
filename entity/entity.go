// Package entity contains the enterprise wide data holders of the kernel.
//
// Entities are passive: they carry data and an identity, but no behaviour.
// Uniqueness of an identity is never checked by the entity itself,
// it is up to the backing store of a repository to enforce it.
package entity

// Entity is anything that can be identified by a string key.
type Entity interface {
	Identity() string
}

var _ Entity = KeyValue{}

// KeyValue is the entity used by key-value storages.
// ID is unique per backing store, Value is opaque and can be of any type.
type KeyValue struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

func NewKeyValue(id string, value any) KeyValue {
	return KeyValue{ID: id, Value: value}
}

func (kv KeyValue) Identity() string {
	return kv.ID
}
