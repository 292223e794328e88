// Package embedder supplies the injected embedding capability the
// orchestrator depends on: a function from texts to vectors,
// same-order, equal-length output, with a model name stored alongside each
// vector for stale-embedding detection on model switch.
package embedder

// Embedder turns chunk text into vectors. Callers choose the batch size;
// implementations wrap their own errors, and callers may assume a failure is
// all-or-nothing for the batch passed in, never partial.
type Embedder interface {
	// Embed returns one vector per input text, in the same order. An error
	// means none of the batch's vectors should be trusted or persisted.
	Embed(texts []string) ([][]float32, error)

	// Model names the embedding model in use. The orchestrator stores this
	// alongside each vector and re-embeds chunks whose stored model name no
	// longer matches.
	Model() string
}
