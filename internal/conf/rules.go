package conf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
)

// RuleGroupNames lists the rule groups accepted under "linter.rules".
var RuleGroupNames = []string{
	"a11y",
	"complexity",
	"correctness",
	"nursery",
	"performance",
	"security",
	"style",
	"suspicious",
}

var ruleNamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// RuleLevel is the severity of a rule; off disables it.
type RuleLevel string

const (
	RuleLevelOff   RuleLevel = "off"
	RuleLevelWarn  RuleLevel = "warn"
	RuleLevelError RuleLevel = "error"
)

func (v *RuleLevel) UnmarshalText(text []byte) error {
	return parseEnum(v, text, RuleLevelOff, RuleLevelWarn, RuleLevelError)
}

// RuleConfiguration is the setting of a single rule. It is written either as
// a bare level ("error") or as an object carrying rule options.
type RuleConfiguration struct {
	Level   RuleLevel       `json:"level"`
	Options json.RawMessage `json:"options,omitempty"`
}

func (c *RuleConfiguration) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var level RuleLevel
		if err := json.Unmarshal(trimmed, &level); err != nil {
			return err
		}
		*c = RuleConfiguration{Level: level}
		return nil
	}

	type withOptions RuleConfiguration
	var v withOptions
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if v.Level == "" {
		return fmt.Errorf("missing field %q", "level")
	}
	*c = RuleConfiguration(v)
	return nil
}

func (c RuleConfiguration) MarshalJSON() ([]byte, error) {
	if c.Options == nil {
		return json.Marshal(c.Level)
	}
	type withOptions RuleConfiguration
	return json.Marshal(withOptions(c))
}

// IsEnabled reports whether the rule emits diagnostics.
func (c RuleConfiguration) IsEnabled() bool {
	return c.Level != RuleLevelOff
}

// RuleGroup is the table of rules of one group. Every rule name is an
// independent slot when merging.
type RuleGroup struct {
	Recommended *bool
	All         *bool
	Rules       map[string]RuleConfiguration
}

func (g *RuleGroup) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var group RuleGroup
	for _, key := range sortedKeys(raw) {
		value := raw[key]
		switch key {
		case "recommended":
			if err := json.Unmarshal(value, &group.Recommended); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case "all":
			if err := json.Unmarshal(value, &group.All); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		default:
			if !ruleNamePattern.MatchString(key) {
				return fmt.Errorf("unknown field %q", key)
			}
			var rule RuleConfiguration
			if err := json.Unmarshal(value, &rule); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if group.Rules == nil {
				group.Rules = make(map[string]RuleConfiguration)
			}
			group.Rules[key] = rule
		}
	}
	*g = group
	return nil
}

func (g RuleGroup) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Rules)+2)
	if g.Recommended != nil {
		out["recommended"] = *g.Recommended
	}
	if g.All != nil {
		out["all"] = *g.All
	}
	for name, rule := range g.Rules {
		out[name] = rule
	}
	return json.Marshal(out)
}

// Merge overlays later onto g. Rules present in both take the later
// setting, the others are kept.
func (g RuleGroup) Merge(later RuleGroup) RuleGroup {
	return RuleGroup{
		Recommended: pick(g.Recommended, later.Recommended),
		All:         pick(g.All, later.All),
		Rules:       mergeTable(g.Rules, later.Rules, func(_, l RuleConfiguration) RuleConfiguration { return l }),
	}
}

// Rules is the rule table of the linter.
type Rules struct {
	// Recommended enables the recommended rules of every group. Unset means
	// enabled.
	Recommended *bool
	// All enables every rule of every group.
	All    *bool
	Groups map[string]RuleGroup
}

func (r *Rules) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var rules Rules
	for _, key := range sortedKeys(raw) {
		value := raw[key]
		switch key {
		case "recommended":
			if err := json.Unmarshal(value, &rules.Recommended); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case "all":
			if err := json.Unmarshal(value, &rules.All); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		default:
			if !isRuleGroup(key) {
				return fmt.Errorf("unknown field %q", key)
			}
			var group RuleGroup
			if err := json.Unmarshal(value, &group); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if rules.Groups == nil {
				rules.Groups = make(map[string]RuleGroup)
			}
			rules.Groups[key] = group
		}
	}
	*r = rules
	return nil
}

func (r Rules) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Groups)+2)
	if r.Recommended != nil {
		out["recommended"] = *r.Recommended
	}
	if r.All != nil {
		out["all"] = *r.All
	}
	for name, group := range r.Groups {
		out[name] = group
	}
	return json.Marshal(out)
}

// Merge overlays later onto r group by group.
func (r Rules) Merge(later Rules) Rules {
	return Rules{
		Recommended: pick(r.Recommended, later.Recommended),
		All:         pick(r.All, later.All),
		Groups:      mergeTable(r.Groups, later.Groups, RuleGroup.Merge),
	}
}

// IsRecommended reports whether the recommended rules are on.
func (r Rules) IsRecommended() bool {
	return orDefault(r.Recommended, true)
}

// Rule returns the explicit configuration of a rule, if any.
func (r Rules) Rule(group, name string) (RuleConfiguration, bool) {
	rule, ok := r.Groups[group].Rules[name]
	return rule, ok
}

func (r Rules) clone() Rules {
	return Rules{}.Merge(r)
}

func isRuleGroup(name string) bool {
	for _, g := range RuleGroupNames {
		if g == name {
			return true
		}
	}
	return false
}

// mergeTable merges two keyed tables entry by entry into a fresh map. Entries
// present on both sides are combined with merge.
func mergeTable[V any](earlier, later map[string]V, merge func(V, V) V) map[string]V {
	if earlier == nil && later == nil {
		return nil
	}
	out := make(map[string]V, len(earlier)+len(later))
	for k, v := range earlier {
		out[k] = v
	}
	for k, v := range later {
		if prev, ok := out[k]; ok {
			out[k] = merge(prev, v)
			continue
		}
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
