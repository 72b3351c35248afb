package engine

// SystemGroup is one phase of the fixed per-tick ordering
type SystemGroup int

const (
	GroupPreLogic SystemGroup = iota
	GroupLogic
	GroupPostLogic
	GroupGamePhysics
	GroupPhysics
	GroupPreRender
	GroupRender

	groupCount
)

// Groups lists every group in the order the loop driver must update them each tick
var Groups = [...]SystemGroup{
	GroupPreLogic,
	GroupLogic,
	GroupPostLogic,
	GroupGamePhysics,
	GroupPhysics,
	GroupPreRender,
	GroupRender,
}

// DefaultGroup is used for systems that never declare or receive a group
const DefaultGroup = GroupLogic

var groupNames = [groupCount]string{
	"pre-logic",
	"logic",
	"post-logic",
	"game-physics",
	"physics",
	"pre-render",
	"render",
}

// Valid reports whether g is one of the fixed groups
func (g SystemGroup) Valid() bool {
	return g >= 0 && g < groupCount
}

func (g SystemGroup) String() string {
	if !g.Valid() {
		return "unknown"
	}
	return groupNames[g]
}
