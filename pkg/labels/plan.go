package labels

import "fmt"

// Mode selects the reconciliation policy
type Mode string

const (
	// ModeUpdate creates missing labels and corrects colors, never deletes
	ModeUpdate Mode = "update"
	// ModeReplace makes the current set equal the desired set, deletions included
	ModeReplace Mode = "replace"
)

// ParseMode converts a CLI argument into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUpdate, ModeReplace:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q: expected %q or %q", s, ModeUpdate, ModeReplace)
	}
}

// OperationKind represents the type of change an Operation makes
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
	// OperationFetch only appears on the synthetic result produced when the
	// current labels of a repository could not be listed.
	OperationFetch OperationKind = "fetch"
)

// Operation is the atomic unit of change against a label store
type Operation struct {
	Kind  OperationKind `json:"kind"`
	Name  string        `json:"name,omitempty"`
	Color string        `json:"color,omitempty"`
}

// String renders the operation for logs and error messages
func (o Operation) String() string {
	switch o.Kind {
	case OperationCreate, OperationUpdate:
		return fmt.Sprintf("%s %s (%s)", o.Kind, o.Name, o.Color)
	case OperationDelete:
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	default:
		return string(o.Kind)
	}
}

// Create returns an operation creating name with color
func Create(name, color string) Operation {
	return Operation{Kind: OperationCreate, Name: name, Color: color}
}

// Update returns an operation setting the color of an existing label
func Update(name, color string) Operation {
	return Operation{Kind: OperationUpdate, Name: name, Color: color}
}

// Delete returns an operation removing a label
func Delete(name string) Operation {
	return Operation{Kind: OperationDelete, Name: name}
}

// Diff splits the label names of a desired/current pair into three disjoint,
// sorted sets.
type Diff struct {
	Create []string
	Update []string
	Delete []string
}

// Compare computes the Diff between desired and current without mutating either
func Compare(desired, current LabelSet) Diff {
	var diff Diff

	for _, name := range desired.Names() {
		currentColor, exists := current[name]
		switch {
		case !exists:
			diff.Create = append(diff.Create, name)
		case !ColorsEqual(currentColor, desired[name]):
			diff.Update = append(diff.Update, name)
		}
	}

	for _, name := range current.Names() {
		if _, exists := desired[name]; !exists {
			diff.Delete = append(diff.Delete, name)
		}
	}

	return diff
}

// Empty reports whether the diff holds no changes
func (d Diff) Empty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}

// Decide returns the ordered operations converging current towards desired.
//
// Creates and updates come first, in name order of the desired set. Deletes
// follow in name order and are only emitted in ModeReplace.
func Decide(desired, current LabelSet, mode Mode) []Operation {
	diff := Compare(desired, current)

	toCreate := toSet(diff.Create)
	toUpdate := toSet(diff.Update)

	ops := make([]Operation, 0, len(diff.Create)+len(diff.Update)+len(diff.Delete))
	for _, name := range desired.Names() {
		if toCreate[name] {
			ops = append(ops, Create(name, desired[name]))
		} else if toUpdate[name] {
			ops = append(ops, Update(name, desired[name]))
		}
	}

	if mode == ModeReplace {
		for _, name := range diff.Delete {
			ops = append(ops, Delete(name))
		}
	}

	return ops
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
