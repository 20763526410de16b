// Package resolve merges explicit input, an existing manifest, the inspected
// environment, configured defaults and prompt answers into one
// Configuration. Resolve is a pure function of its layers.
package resolve
