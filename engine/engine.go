package engine

// Options controls engine behavior.
type Options struct {
	// EnableLiveListCreation switches the CREATE LIST handler from
	// instruction generation to the platform create-list primitive.
	// Instructions-only is the safe default.
	EnableLiveListCreation bool
}

// Engine executes validated DML statements against the host platform
// collaborators. Either collaborator may be nil: preview-mode and
// instruction-generating paths never touch them, and committed
// mutations fail cleanly when the needed collaborator is absent.
type Engine struct {
	queries QueryEngine
	records RecordStore
	guard   *TableGuard
	opts    Options
}

// NewEngine creates an Engine over the given collaborators.
func NewEngine(queries QueryEngine, records RecordStore, guard *TableGuard, opts Options) *Engine {
	return &Engine{
		queries: queries,
		records: records,
		guard:   guard,
		opts:    opts,
	}
}
