// A simple wrapper to have State changes based on atomic variable
package state

import "sync/atomic"

// StateMachine holds a state of type T. Zero value holds T(0).
type StateMachine[T ~uint32] struct {
	state atomic.Uint32
}

func (stm *StateMachine[T]) SetState(newState T) {
	stm.state.Store(uint32(newState))
}

func (stm *StateMachine[T]) GetState() T {
	return T(stm.state.Load())
}

// ChangeState switches to newState only if current state is oldState
func (stm *StateMachine[T]) ChangeState(oldState, newState T) bool {
	return stm.state.CompareAndSwap(uint32(oldState), uint32(newState))
}
