package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInstaller is a testify mock of installer.Installer.
type MockInstaller struct {
	mock.Mock
}

// NewMockInstaller returns a MockInstaller whose Run succeeds for any
// directory.
func NewMockInstaller() *MockInstaller {
	m := &MockInstaller{}
	m.On("Run", mock.Anything, mock.Anything).Return(nil)
	return m
}

// Fail replaces every expectation with one returning err.
func (m *MockInstaller) Fail(err error) *MockInstaller {
	m.ExpectedCalls = nil
	m.On("Run", mock.Anything, mock.Anything).Return(err)
	return m
}

// Run records the call and returns the configured error.
func (m *MockInstaller) Run(ctx context.Context, projectDir string) error {
	return m.Called(ctx, projectDir).Error(0)
}

// MockToolCheck is a testify mock of installer.ToolCheck.
type MockToolCheck struct {
	mock.Mock
}

// NewMockToolCheck returns a MockToolCheck that always passes.
func NewMockToolCheck() *MockToolCheck {
	m := &MockToolCheck{}
	m.On("Check", mock.Anything).Return(nil)
	return m
}

// Fail replaces every expectation with one returning err.
func (m *MockToolCheck) Fail(err error) *MockToolCheck {
	m.ExpectedCalls = nil
	m.On("Check", mock.Anything).Return(err)
	return m
}

// Check records the call and returns the configured error.
func (m *MockToolCheck) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
