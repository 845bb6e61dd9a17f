package scene

import "log/slog"

// GraphBuilderOption is a functional option for configuring a Graph via NewGraph.
type GraphBuilderOption func(*graph)

// WithRoot replaces the default empty root. Nodes not built by NewNode are ignored.
//
// Parameters:
//   - root: the root node
//
// Returns:
//   - GraphBuilderOption: a function that applies the root to a graph
func WithRoot(root Node) GraphBuilderOption {
	return func(g *graph) {
		if r, err := asSceneNode(root); err == nil {
			g.root = r
		}
	}
}

// WithLogger sets the structured logger of the Graph.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - GraphBuilderOption: a function that applies the logger to a graph
func WithLogger(logger *slog.Logger) GraphBuilderOption {
	return func(g *graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}
