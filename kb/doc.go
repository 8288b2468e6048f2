// Package kb models the knowledgebase of interatomic models as a key-value
// metadata store indexed by model name.
//
// The package defines:
//
//   - [Store]: the lookup contract, pluggable via [SetDefault]
//   - [Collection]: a scoped handle for classifying items
//   - [SimulatorModel]: a scoped handle over one simulator model's metadata
//   - [MemStore]: in-memory store for embedders and tests
//   - [DirStore]: store backed by a directory of YAML metadata files
//
// Handles follow a strict acquire/read/release discipline: open one
// immediately before use and Close it on every exit path.
//
//	col, err := kb.OpenCollection()
//	if err != nil { ... }
//	defer col.Close()
//	typ, err := col.ItemType(name)
package kb
