package conf

// Merge folds fragments left to right into a single partial configuration.
// Each fragment has strictly higher precedence than the ones before it:
//
//   - a present scalar overwrites the earlier value, an absent one keeps it;
//   - nested aggregates present on both sides are merged recursively;
//   - glob sets, globals, extends and overrides are replaced when present;
//   - rule tables are merged rule by rule.
//
// The fragments are never modified.
func Merge(fragments ...PartialConfiguration) PartialConfiguration {
	var merged PartialConfiguration
	for _, fragment := range fragments {
		merged = merged.Merge(fragment)
	}
	return merged
}
