// Package config resolves display options from three layers: global
// defaults, buffer-local overrides, and window-local overrides.
// Higher layers override lower ones key by key; a query merges the
// layers into one concrete option set.
//
// Assignments are validated before they land. A rejected assignment
// leaves every layer unchanged.
package config
