// Package view turns backend responses into render-ready view models.
// Everything here is a pure function of its inputs: no I/O, no widget
// state, so every chart and metric is testable without a live backend.
package view
