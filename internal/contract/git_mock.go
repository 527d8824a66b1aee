package contract

import (
	"context"

	"github.com/huangsam/tempo/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// RepoRoot implements the GitClient interface.
func (m *MockGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// HeadHash implements the GitClient interface.
func (m *MockGitClient) HeadHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}

// CommitTimestamps implements the GitClient interface.
func (m *MockGitClient) CommitTimestamps(ctx context.Context, repoPath string, opts LogOptions) ([]schema.TimestampRecord, error) {
	ret := m.Called(ctx, repoPath, opts)
	records, _ := ret.Get(0).([]schema.TimestampRecord)
	return records, ret.Error(1)
}

// CloneTemp implements the GitClient interface.
func (m *MockGitClient) CloneTemp(ctx context.Context, url string) (string, func() error, error) {
	ret := m.Called(ctx, url)
	dir, _ := ret.Get(0).(string)
	cleanup, _ := ret.Get(1).(func() error)
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return dir, cleanup, ret.Error(2)
}
