package memview

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockAllocator is a go.uber.org/mock-style hand-authored test double for
// Allocator. It exists so extent/array/bitvector growth tests can force a
// capacity-exhaustion path deterministically, without actually exhausting
// real memory. Shaped like mockgen output: a controller-bound struct with
// an EXPECT() recorder, rather than a bespoke stub type per test.
type MockAllocator struct {
	ctrl     *gomock.Controller
	recorder *MockAllocatorMockRecorder
}

// MockAllocatorMockRecorder records expected calls for MockAllocator.
type MockAllocatorMockRecorder struct {
	mock *MockAllocator
}

// NewMockAllocator returns a new mock allocator bound to ctrl.
func NewMockAllocator(ctrl *gomock.Controller) *MockAllocator {
	m := &MockAllocator{ctrl: ctrl}
	m.recorder = &MockAllocatorMockRecorder{m}

	return m
}

// EXPECT returns the recorder used to set up call expectations.
func (m *MockAllocator) EXPECT() *MockAllocatorMockRecorder {
	return m.recorder
}

// Allocate implements Allocator by delegating to the controller.
func (m *MockAllocator) Allocate(n int64) View {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "Allocate", n)
	v, _ := ret[0].(View)

	return v
}

// Allocate records an expectation of a call to Allocate.
func (mr *MockAllocatorMockRecorder) Allocate(n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Allocate", reflect.TypeOf((*MockAllocator)(nil).Allocate), n)
}
