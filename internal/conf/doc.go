// Package conf loads, merges and resolves the biome.json configuration.
//
// # Usage
//
// Configuration is loaded explicitly through a ConfigSource:
//
//	cs := &conf.ConfigSource{
//	    Hint: conf.UserHint{Path: "./configs/biome.json"},
//	    CLI:  &cliPartial,
//	}
//	loaded, err := cs.Read()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loaded.Configuration.Formatter.LineWidth)
//
// Per-file settings come from Loaded.ForFile, which applies the overrides
// matching that file.
//
// # Load Order
//
// Configuration is loaded and applied in four layers, each one overriding the
// previous ones:
//
//  1. Embedded defaults (defaults.json)
//  2. The files listed in "extends", depth first, in the order they are listed
//  3. The configuration file: biome.json or biome.jsonc
//  4. Command line values
//
// # Internal Architecture
//
// Every aggregate exists twice:
//
//   - PartialX: pointer fields, as read from a file or the command line.
//     Pointers allow distinguishing "not set" (nil) from "set to zero value".
//     Merge combines two partials, the argument winning.
//
//   - X: value fields, always fully populated. PartialX.Resolve fills absent
//     fields with defaults. Language formatters fall back to the top-level
//     formatter before the hard defaults.
//
//   - ExtendsResolver: walks the extends graph without recursion, detecting
//     cycles and resolving package references through package.json exports.
//
//   - ConfigSource: orchestrates loading from multiple sources and manages
//     their merging.
//
//   - ParseConfiguration: parses a JSON/JSONC document into a
//     PartialConfiguration. Separate from loading for clean separation of
//     I/O and parsing.
package conf
