package contextWaitGroup

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
)

// CWG ties a group of loops to one context, the first failing loop
// cancels the others.
type CWG struct {
	sync.WaitGroup
	Ctx    context.Context
	Cancel context.CancelFunc

	mu   sync.Mutex
	errs []error
}

func New(parent context.Context) *CWG {
	ctx, cancel := context.WithCancel(parent)
	return &CWG{Ctx: ctx, Cancel: cancel}
}

func (c *CWG) WithSignal(signals ...os.Signal) (stop context.CancelFunc) {
	c.Ctx, stop = signal.NotifyContext(c.Ctx, signals...)
	return
}

func (c *CWG) Go(f func(context.Context)) {
	c.WaitGroup.Go(func() {
		f(c.Ctx)
	})
}

// GoErr is Go for loops that can fail, a non nil error cancels the group.
func (c *CWG) GoErr(f func(context.Context) error) {
	c.WaitGroup.Go(func() {
		err := f(c.Ctx)
		if err == nil {
			return
		}
		c.mu.Lock()
		c.errs = append(c.errs, err)
		c.mu.Unlock()
		c.Cancel()
	})
}

// Wait blocks until every loop returned and joins their errors.
func (c *CWG) Wait() error {
	c.WaitGroup.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(c.errs...)
}
