package memview

import (
	"testing"

	"go.uber.org/mock/gomock"
)

func TestMockAllocatorForcesExhaustion(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockAllocator(ctrl)

	mock.EXPECT().Allocate(gomock.Any()).Return(View{}).Times(1)

	v := mock.Allocate(4096)
	if !v.IsNull() {
		t.Fatal("expected the mock to force a null-view (exhaustion) result")
	}
}
