package shared

// BaseAggregateRoot is an entity whose writes are guarded by an
// optimistic-lock version. A fresh aggregate starts at version 1.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot wraps entity at version 1
func NewBaseAggregateRoot(entity BaseEntity) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, Version: 1}
}

// GetVersion returns the version the aggregate was loaded at, or the
// version it will be stored at after MarkModified.
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// MarkModified records a mutation: the version moves forward by one and
// UpdatedAt is reset.
func (a *BaseAggregateRoot) MarkModified() {
	a.Version++
	a.Touch()
}
