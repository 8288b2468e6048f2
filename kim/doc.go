// Package kim selects and configures a force-calculation backend for a
// named interatomic model from the knowledgebase.
//
// There are two kinds of models: portable models, usable directly through
// the standard model-evaluation interface, and simulator models, which are
// thin configuration wrappers bound to one native simulation engine.
// [NewCalculator] classifies the model, resolves a backend, translates the
// model's metadata into that backend's configuration and returns a
// ready-to-use calculator:
//
//	calc, err := kim.NewCalculator("EAM_Dynamo_X__MO_000000000000_000", nil)
//
// Backend resolution defaults to kimmodel for portable models and to the
// engine named by the simulator model's metadata otherwise; the Backend
// field of [Params] overrides it. Caller options are validated against the
// resolved backend before anything is constructed: keys the dispatcher
// computes itself are rejected with [ErrOptionConflict].
//
// Every call is independent. No state persists between calls and no
// partially configured calculator is ever returned.
package kim
