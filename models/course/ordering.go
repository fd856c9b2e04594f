package course

import "edu/ordering"

// Sibling groups: modules are numbered per course, contents per module.
var (
	ModuleOrdering  = ordering.Config{GroupBy: []string{"course_id"}}
	ContentOrdering = ordering.Config{GroupBy: []string{"module_id"}}
)

// RegisterOrdering registers every ordered model of the package
func RegisterOrdering(r *ordering.Registry) error {
	if err := r.Register(&Module{}, ModuleOrdering); err != nil {
		return err
	}
	return r.Register(&Content{}, ContentOrdering)
}
