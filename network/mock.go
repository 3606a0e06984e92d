package network

import "context"

// MockNodeService is a test double for NodeService.
// All function fields must be set before the corresponding method is called.
type MockNodeService struct {
	SubmitExtrinsicFn func(ctx context.Context, extrinsicHex string) (string, error)
	GetStorageFn      func(ctx context.Context, keyHex string) (string, error)
}

func (m *MockNodeService) SubmitExtrinsic(ctx context.Context, extrinsicHex string) (string, error) {
	return m.SubmitExtrinsicFn(ctx, extrinsicHex)
}
func (m *MockNodeService) GetStorage(ctx context.Context, keyHex string) (string, error) {
	return m.GetStorageFn(ctx, keyHex)
}
