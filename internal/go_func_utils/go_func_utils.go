package go_func_utils

import (
	"log"
	"runtime/debug"
	"sync"
)

// SafeGo runs fn on a new goroutine. The curses UI owns stdout, so a panic
// would vanish from view; log it with the goroutine name and stack first,
// then crash as usual.
func SafeGo(logger *log.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// Group starts goroutines through SafeGo and lets the owner wait for all of
// them on shutdown
type Group struct {
	logger *log.Logger
	wg     sync.WaitGroup
}

func NewGroup(logger *log.Logger) *Group {
	if logger == nil {
		panic("Group: logger cannot be nil")
	}
	return &Group{logger: logger}
}

// Go runs fn on a tracked goroutine
func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	SafeGo(g.logger, name, func() {
		defer g.wg.Done()
		fn()
	})
}

// Wait blocks until every goroutine started with Go has returned
func (g *Group) Wait() {
	g.wg.Wait()
}
