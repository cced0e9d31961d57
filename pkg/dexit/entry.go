package dexit

// TestEntry is the resolved form of a Test: its own tags/defaults/params
// merged with its enclosing TestSetEntry's tags and its own skip resolved
// against the enclosing set's skip.
type TestEntry struct {
	Name        string
	Description string
	Tags        []string
	Defaults    map[string]interface{}
	Params      map[string]interface{}
	Skip        bool
	Tasks       []Task
}

// TestSetEntry is the resolved form of a TestSet after inheritance has been
// propagated top-down from the root. ID is the fully-qualified dotted path
// prefixed with "$" (the synthetic root), e.g. "$.api.auth".
type TestSetEntry struct {
	ID             string
	Name           string
	Path           []string
	Description    string
	Tags           []string
	Defaults       map[string]interface{}
	Params         map[string]interface{}
	BeforeAllTasks []Task
	AfterAllTasks  []Task

	// BeforeEachTasks and AfterEachTasks are accumulated: a parent's
	// sequence is prepended to the node's own beforeEach/appended before
	// the node's own afterEach.
	BeforeEachTasks []Task
	AfterEachTasks  []Task

	ExecutionOrder string
	Skip           bool

	Children map[string]*TestSetEntry
	Tests    []*TestEntry

	// TestCount is the number of tests owned transitively by this node
	// (its own tests plus every child's TestCount), computed during build.
	TestCount int
}

// IsRoot reports whether this entry is the synthetic root node ("$") that
// the Repository creates to anchor the namespace tree; the root carries no
// schema of its own.
func (e *TestSetEntry) IsRoot() bool {
	return e.ID == "$"
}
