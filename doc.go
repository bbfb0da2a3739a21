// Package pricegraph records named price series ("graphs") and turns them
// into chart-ready data.
//
// A Graph has a title, a short description and an ordered list of
// (price, date) rows. Graphs are kept by a Repository in a single key of a
// pluggable key-value store (see package kv), always listed after a built-in
// sample graph.
//
// The main pieces are:
//   - Seed: the fixed sample graph, never stored.
//   - Validate: the form rules a Candidate must pass before being stored.
//   - Repository: list, get, create, update and remove graphs.
//   - ToSeries and Latest: the labels/values projection of a graph and its
//     headline value.
//
// This package is the foundation of the `pgraph` command-line tool.
package pricegraph
