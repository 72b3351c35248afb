package component

// PlayerComponent marks the player entity
type PlayerComponent struct{}

// TreeComponent marks an obstacle tree
type TreeComponent struct{}
