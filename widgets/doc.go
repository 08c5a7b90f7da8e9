// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (charts, tables, metric cards, column layout)
//
// Not allowed here:
// - key handling, fetch logic, or any knowledge of the backend API
package widgets
