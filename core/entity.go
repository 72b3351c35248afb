package core

// Entity is an opaque handle identifying a game object; it carries no data
type Entity uint64

// TypeID is the dense table index assigned to a component or system type by a TypeRegistry
type TypeID uint32
