package mock

import (
	"context"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/model"
)

// MockAssetRepo implements port.AssetRepository for tests.
type MockAssetRepo struct {
	AssetRecord *model.Asset
	NextID      int64

	GetErr       error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	IncrementErr error
	ListErr      error
	ListOut      []int64
	ListBefore   time.Time

	GetCalled       bool
	Created         *model.Asset
	Updated         *model.Asset
	DeleteCalled    bool
	DeletedID       int64
	IncrementCalled bool
	IncrementUnique bool
	ListCalled      bool
}

func (m *MockAssetRepo) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.AssetRecord, nil
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	m.Created = asset
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.NextID != 0 {
		asset.ID = m.NextID
	}
	return nil
}

func (m *MockAssetRepo) Update(ctx context.Context, asset *model.Asset) error {
	m.Updated = asset
	return m.UpdateErr
}

func (m *MockAssetRepo) Delete(ctx context.Context, id int64) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockAssetRepo) IncrementDownloadCounts(ctx context.Context, id int64, unique bool) error {
	m.IncrementCalled = true
	m.IncrementUnique = unique
	return m.IncrementErr
}

func (m *MockAssetRepo) ListRemoteUpdatedBefore(ctx context.Context, before time.Time) ([]int64, error) {
	m.ListCalled = true
	m.ListBefore = before
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

// MockCategoryRepo implements port.CategoryRepository for tests.
type MockCategoryRepo struct {
	Category *model.Category
	Err      error

	Called bool
	GotID  int64
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	m.Called = true
	m.GotID = id
	return m.Category, m.Err
}
