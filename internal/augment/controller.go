package augment

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/session"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// Generator produces replacement text. generation.Service satisfies it.
type Generator interface {
	GenerateBio(ctx context.Context, doc types.ResumeDocument) (string, error)
	GenerateWorkDescription(ctx context.Context, req types.WorkDescriptionRequest) (string, error)
	GenerateProjectDescription(ctx context.Context, req types.ProjectDescriptionRequest) (string, error)
}

// State is the generation state of one target
type State int

const (
	// Idle means no generation is running for the target
	Idle State = iota
	// Pending means a generation has started and not yet finished
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Result describes a finished generation
type Result struct {
	Target Target
	Text   string
	// Applied is false when the generation failed or its entry was removed while it ran
	Applied bool
	Err     error
}

// Task is one running generation
type Task struct {
	Target Target
	done   chan struct{}
	result Result
}

// Done is closed when the generation has finished and its result has been applied
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the task is done and returns its outcome
func (t *Task) Result() Result {
	<-t.done
	return t.result
}

// taskKey identifies a target by entry id so a pending entry keeps its key when siblings are removed
type taskKey struct {
	kind Kind
	id   string
}

// Controller runs generations against one session
type Controller struct {
	session *session.Session
	gen     Generator
	logger  *zap.Logger
	timeout time.Duration

	mu         sync.Mutex
	pending    map[taskKey]*Task
	onComplete func(Result)
	wg         sync.WaitGroup
}

// NewController creates a controller writing into s
func NewController(s *session.Session, gen Generator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		session: s,
		gen:     gen,
		logger:  logger.With(zap.String("session_id", s.ID)),
		pending: make(map[taskKey]*Task),
	}
}

// SetTimeout bounds every generator call started afterwards (0 = no bound)
func (c *Controller) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// OnComplete registers a hook called after each generation finishes
func (c *Controller) OnComplete(fn func(Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onComplete = fn
}

// Start begins a generation for target using the document as it is now.
// The request context supplies values only: a started generation is never cancelled.
func (c *Controller) Start(ctx context.Context, target Target) (*Task, error) {
	doc := c.session.Snapshot()
	key, call, err := c.prepare(doc, target)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, busy := c.pending[key]; busy {
		c.mu.Unlock()
		return nil, ErrGenerationAlreadyInFlight
	}
	task := &Task{Target: target, done: make(chan struct{})}
	c.pending[key] = task
	timeout := c.timeout
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("generation started", zap.Stringer("target", target))
	go c.run(context.WithoutCancel(ctx), timeout, key, task, call)
	return task, nil
}

// State reports whether target currently has a pending generation
func (c *Controller) State(target Target) State {
	key, _, err := c.prepare(c.session.Snapshot(), target)
	if err != nil {
		return Idle
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.pending[key]; busy {
		return Pending
	}
	return Idle
}

// Pending lists the targets with a running generation, at their current positions.
// Targets whose entry has been removed are left out.
func (c *Controller) Pending() []Target {
	doc := c.session.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	targets := make([]Target, 0, len(c.pending))
	if _, ok := c.pending[taskKey{kind: KindBio}]; ok {
		targets = append(targets, Bio())
	}
	for _, kind := range []Kind{KindWorkExperience, KindProjects} {
		list, _ := Target{Kind: kind}.List()
		for i := 0; i < portfolio.Len(doc, list); i++ {
			id, _ := portfolio.EntryID(doc, list, i)
			if _, ok := c.pending[taskKey{kind: kind, id: id}]; ok {
				targets = append(targets, Target{Kind: kind, Index: i})
			}
		}
	}
	return targets
}

// Wait blocks until every started generation has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

type generateFunc func(ctx context.Context) (string, error)

// prepare resolves target against doc and captures the generator input
func (c *Controller) prepare(doc types.ResumeDocument, target Target) (taskKey, generateFunc, error) {
	if target.Kind == KindBio {
		return taskKey{kind: KindBio}, func(ctx context.Context) (string, error) {
			return c.gen.GenerateBio(ctx, doc)
		}, nil
	}

	list, ok := target.List()
	if !ok {
		return taskKey{}, nil, &InvalidTargetError{Value: target.String()}
	}
	id, err := portfolio.EntryID(doc, list, target.Index)
	if err != nil {
		return taskKey{}, nil, err
	}
	key := taskKey{kind: target.Kind, id: id}

	if target.Kind == KindWorkExperience {
		req := types.WorkRequestFrom(*doc.WorkExperience[target.Index])
		return key, func(ctx context.Context) (string, error) {
			return c.gen.GenerateWorkDescription(ctx, req)
		}, nil
	}
	req := types.ProjectRequestFrom(*doc.Projects[target.Index])
	return key, func(ctx context.Context) (string, error) {
		return c.gen.GenerateProjectDescription(ctx, req)
	}, nil
}

func (c *Controller) run(ctx context.Context, timeout time.Duration, key taskKey, task *Task, call generateFunc) {
	defer c.wg.Done()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := Result{Target: task.Target}
	text, err := call(ctx)
	if err != nil {
		result.Err = &RemoteServiceError{Target: task.Target.String(), Message: "generation failed", Cause: err}
		c.logger.Warn("generation failed", zap.Stringer("target", task.Target), zap.Error(err))
	} else {
		result.Text = text
		result.Applied, result.Err = c.apply(key, text)
	}

	c.mu.Lock()
	delete(c.pending, key)
	task.result = result
	hook := c.onComplete
	c.mu.Unlock()

	close(task.done)
	if hook != nil {
		hook(result)
	}
}

// apply writes text into the document value current now, finding the entry by id
func (c *Controller) apply(key taskKey, text string) (bool, error) {
	if key.kind == KindBio {
		_, err := c.session.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
			return portfolio.SetBio(doc, text), true, nil
		})
		return err == nil, err
	}

	list, _ := Target{Kind: key.kind}.List()
	applied, err := c.session.Apply(func(doc types.ResumeDocument) (types.ResumeDocument, bool, error) {
		index := portfolio.IndexOf(doc, list, key.id)
		if index < 0 {
			return doc, false, nil
		}
		next, err := portfolio.SetEntryField(doc, list, index, portfolio.FieldDescription, text)
		return next, err == nil, err
	})
	if err == nil && !applied {
		c.logger.Debug("entry removed during generation, result discarded",
			zap.String("list", string(list)), zap.String("entry_id", key.id))
	}
	return applied, err
}
