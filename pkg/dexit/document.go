package dexit

// Task is a single unit of work: an invocation of a registered command.
type Task struct {
	ID              string                 `yaml:"id,omitempty" json:"id,omitempty"`
	Description     string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Do              string                 `yaml:"do" json:"do"`
	Args            map[string]interface{} `yaml:"args,omitempty" json:"args,omitempty"`
	Expect          map[string]interface{} `yaml:"expect,omitempty" json:"expect,omitempty"`
	Set             map[string]interface{} `yaml:"set,omitempty" json:"set,omitempty"`
	RunBeforeAsync  string                 `yaml:"runBeforeAsync,omitempty" json:"runBeforeAsync,omitempty"`
	ContinueOnError bool                   `yaml:"continueOnError,omitempty" json:"continueOnError,omitempty"`
}

// Test is an ordered sequence of Tasks sharing a description and parameters.
type Test struct {
	Name        string                 `yaml:"name,omitempty" json:"name,omitempty"`
	Description string                 `yaml:"description" json:"description"`
	Tags        []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Defaults    map[string]interface{} `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Params      map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`
	Skip        bool                   `yaml:"skip,omitempty" json:"skip,omitempty"`
	Tasks       []Task                 `yaml:"tasks" json:"tasks"`
}

const (
	ExecutionOrderAsync = "async"
	ExecutionOrderSync  = "sync"
)

// TestSet is the raw, as-parsed shape of one YAML document: a namespace
// node carrying tests, hooks, and optional child-set metadata implied by
// its dotted name.
type TestSet struct {
	Name           string                 `yaml:"name" json:"name"`
	Description    string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Tags           []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Defaults       map[string]interface{} `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Params         map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`
	BeforeAll      []Task                 `yaml:"beforeAll,omitempty" json:"beforeAll,omitempty"`
	AfterAll       []Task                 `yaml:"afterAll,omitempty" json:"afterAll,omitempty"`
	BeforeEach     []Task                 `yaml:"beforeEach,omitempty" json:"beforeEach,omitempty"`
	AfterEach      []Task                 `yaml:"afterEach,omitempty" json:"afterEach,omitempty"`
	ExecutionOrder string                 `yaml:"executionOrder,omitempty" json:"executionOrder,omitempty"`
	Skip           bool                   `yaml:"skip,omitempty" json:"skip,omitempty"`
	Tests          []Test                 `yaml:"tests,omitempty" json:"tests,omitempty"`
}

// TestDocument is a single parsed YAML document plus its source location.
// Immutable after load.
type TestDocument struct {
	Source string // file name the document was read from
	Path   string // absolute path of the source file
	Index  int    // index of this document within a multi-document stream
	Set    TestSet
}
