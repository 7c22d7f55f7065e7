package formulas

import "github.com/edwingeng/deque"

// frame holds the parameter bindings of one active call. A frame's parent is
// the frame of the call that was active when it was pushed, so lookups see
// every binding on the call stack that is not shadowed by a nearer one.
type frame struct {
	fn     string
	vars   map[string]float64
	parent *frame
}

func (f *frame) lookup(name string) (float64, bool) {
	for ; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// frames is the stack of active calls. The empty stack is the top-level
// environment, which has no bindings.
type frames struct {
	d deque.Deque
}

func newFrames() frames {
	return frames{d: deque.NewDeque()}
}

func (s *frames) top() *frame {
	if s.d.Len() == 0 {
		return nil
	}
	return s.d.Back().(*frame)
}

// push binds params to args in a new frame over the current one. The returned
// function pops the frame; callers defer it so that the caller's bindings are
// restored however the call ends.
func (s *frames) push(fn string, params []string, args []float64) func() {
	f := &frame{
		fn:     fn,
		vars:   make(map[string]float64, len(params)),
		parent: s.top(),
	}
	for i, p := range params {
		f.vars[p] = args[i]
	}
	s.d.PushBack(f)
	n := s.d.Len()
	return func() {
		if s.d.Len() != n {
			panic("formulas: unbalanced call frames popping " + fn)
		}
		s.d.PopBack()
	}
}

func (s *frames) lookup(name string) (float64, bool) {
	return s.top().lookup(name)
}

func (s *frames) depth() int {
	return s.d.Len()
}
