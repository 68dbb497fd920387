package decode

// ActionType is the closed set of top-level operations an incoming request
// may name, per §4.1.
type ActionType uint8

const (
	FindUnique ActionType = iota
	FindFirst
	FindMany
	Create
	Update
	Upsert
	Delete
	CreateMany
	UpdateMany
	DeleteMany
	Count
	Aggregate
	GroupBy
	SignIn
	Identity
)

// String names the action, matching its JSON `action` value.
func (a ActionType) String() string {
	switch a {
	case FindUnique:
		return "FindUnique"
	case FindFirst:
		return "FindFirst"
	case FindMany:
		return "FindMany"
	case Create:
		return "Create"
	case Update:
		return "Update"
	case Upsert:
		return "Upsert"
	case Delete:
		return "Delete"
	case CreateMany:
		return "CreateMany"
	case UpdateMany:
		return "UpdateMany"
	case DeleteMany:
		return "DeleteMany"
	case Count:
		return "Count"
	case Aggregate:
		return "Aggregate"
	case GroupBy:
		return "GroupBy"
	case SignIn:
		return "SignIn"
	case Identity:
		return "Identity"
	default:
		return "Unknown"
	}
}

var selectorKeys = []string{"select", "include"}
var findManyKeys = []string{"where", "orderBy", "cursor", "distinct", "skip", "take", "pageSize", "pageNumber", "select", "include"}

// AllowedInputJSONKeys returns the closed set of top-level JSON keys this
// action accepts, per the §4.1 illustrative mapping generalized to every
// action.
func (a ActionType) AllowedInputJSONKeys() []string {
	switch a {
	case FindUnique:
		return append([]string{"where"}, selectorKeys...)
	case FindFirst:
		return findManyKeys
	case FindMany:
		return findManyKeys
	case Create:
		return append([]string{"create"}, selectorKeys...)
	case Update:
		return append([]string{"where", "update"}, selectorKeys...)
	case Upsert:
		return append([]string{"where", "create", "update"}, selectorKeys...)
	case Delete:
		return []string{"where", "select"}
	case CreateMany:
		return []string{"create", "select"}
	case UpdateMany:
		return []string{"where", "update", "select"}
	case DeleteMany:
		return []string{"where", "select"}
	case Count:
		return []string{"where", "select"}
	case Aggregate:
		return []string{"where", "orderBy", "distinct", "skip", "take", "select"}
	case GroupBy:
		return []string{"where", "orderBy", "distinct", "select"}
	case SignIn:
		return []string{"create", "select"}
	case Identity:
		return []string{"select"}
	default:
		return nil
	}
}

// RequiresWhere reports whether the action takes a filter-style selector.
func (a ActionType) RequiresWhere() bool {
	switch a {
	case FindFirst, FindMany, UpdateMany, DeleteMany, Count, Aggregate, GroupBy:
		return true
	default:
		return false
	}
}

// RequiresWhereUnique reports whether the action takes a unique-index
// selector. Exactly one of RequiresWhere/RequiresWhereUnique is true for
// actions that take a selector at all.
func (a ActionType) RequiresWhereUnique() bool {
	switch a {
	case FindUnique, Update, Upsert, Delete:
		return true
	default:
		return false
	}
}

// RequiresCreate reports whether the action expects a `create` payload.
func (a ActionType) RequiresCreate() bool {
	switch a {
	case Create, Upsert, CreateMany, SignIn:
		return true
	default:
		return false
	}
}

// RequiresUpdate reports whether the action expects an `update` payload.
func (a ActionType) RequiresUpdate() bool {
	switch a {
	case Update, Upsert, UpdateMany:
		return true
	default:
		return false
	}
}

// AllowsKey reports whether key is among the action's allowed top-level keys.
func (a ActionType) AllowsKey(key string) bool {
	for _, k := range a.AllowedInputJSONKeys() {
		if k == key {
			return true
		}
	}
	return false
}
