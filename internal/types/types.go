// internal/types/types.go
package types

// EntityID identifies any entity stored in the ECS. Zero is never issued.
type EntityID uint64
