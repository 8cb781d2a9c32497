package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.fmods.dev/fmods/internal/core/domain"
	"go.fmods.dev/fmods/internal/core/ports/mocks"
	"go.fmods.dev/fmods/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func version(t *testing.T, s string) domain.Version {
	t.Helper()
	parsed, err := domain.ParseVersion(s)
	require.NoError(t, err)
	return parsed
}

func versionPtr(t *testing.T, s string) *domain.Version {
	t.Helper()
	parsed := version(t, s)
	return &parsed
}

func release(t *testing.T, versionText string, requirements ...string) domain.Release {
	t.Helper()
	rel := domain.Release{Version: version(t, versionText)}
	for _, text := range requirements {
		req, err := domain.ParseRequirement(text)
		require.NoError(t, err)
		rel.Requirements = append(rel.Requirements, req)
	}
	return rel
}

func emptySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		GameVersion:     domain.NewVersion(2, 0, 0),
		ContentVersions: map[string]domain.Version{"base": domain.NewVersion(2, 0, 55)},
	}
}

func find(resolved []domain.Requirement, modID string) (domain.Requirement, bool) {
	for _, req := range resolved {
		if req.ModID == modID {
			return req, true
		}
	}
	return domain.Requirement{}, false
}

func TestResolve_TransitiveRequirements(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "bobassembly").
		Return([]domain.Release{release(t, "1.0.0", "boblibrary >= 1.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "boblibrary").
		Return([]domain.Release{release(t, "1.0.0")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "bobassembly", versionPtr(t, "1.0.0"))
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	root, ok := find(resolved, "bobassembly")
	require.True(t, ok)
	assert.Equal(t, domain.KindRequire, root.Kind)
	require.NotNil(t, root.Version)
	assert.Equal(t, "1.0.0", root.Version.String())

	library, ok := find(resolved, "boblibrary")
	require.True(t, ok)
	require.NotNil(t, library.Version)
	assert.Equal(t, "1.0.0", library.Version.String())
}

func TestResolve_NoVersionPicksNewestRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "flib").
		Return([]domain.Release{release(t, "0.9.0"), release(t, "0.12.0"), release(t, "0.14.1")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "flib", nil)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.NotNil(t, resolved[0].Version)
	assert.Equal(t, "0.14.1", resolved[0].Version.String())
}

func TestResolve_ExactVersionAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "flib").
		Return([]domain.Release{release(t, "0.9.0")}, nil)

	_, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "flib", versionPtr(t, "0.10.0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSuitableRelease)
}

func TestResolve_NoCompatibleReleases(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "flib").Return(nil, nil)

	_, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "flib", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSuitableRelease)
}

func TestResolve_RegistryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cause := errors.New("connection refused")
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "flib").Return(nil, cause)

	_, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "flib", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModLookupFailed)
	assert.ErrorIs(t, err, cause)
}

func TestResolve_SatisfiedByInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := emptySnapshot()
	snapshot.Mods = []domain.InstalledMod{{Name: "flib", Version: version(t, "3.0.0")}}

	// No Releases expectation for flib: a requirement satisfied by an
	// installed mod must not hit the registry.
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "krastorio").
		Return([]domain.Release{release(t, "1.2.0", "flib >= 2.0.0")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, snapshot, "krastorio", nil)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "krastorio", resolved[0].ModID)
}

func TestResolve_InstalledVersionTooOld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot := emptySnapshot()
	snapshot.Mods = []domain.InstalledMod{{Name: "flib", Version: version(t, "1.0.0")}}

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "krastorio").
		Return([]domain.Release{release(t, "1.2.0", "flib >= 2.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "flib").
		Return([]domain.Release{release(t, "2.0.0")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, snapshot, "krastorio", nil)
	require.NoError(t, err)

	flib, ok := find(resolved, "flib")
	require.True(t, ok)
	require.NotNil(t, flib.Version)
	assert.Equal(t, "2.0.0", flib.Version.String())
}

func TestResolve_UpgradeMonotonicity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Two paths demand "shared": one at 1.0.0, one at 2.0.0. The resolved
	// version must end at 2.0.0 regardless of which demand lands first.
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "root").
		Return([]domain.Release{release(t, "1.0.0", "shared >= 1.0.0", "middle >= 1.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "middle").
		Return([]domain.Release{release(t, "1.0.0", "shared >= 2.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "shared").
		Return([]domain.Release{release(t, "1.0.0"), release(t, "2.0.0")}, nil).
		Times(2)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "root", nil)
	require.NoError(t, err)

	shared, ok := find(resolved, "shared")
	require.True(t, ok)
	require.NotNil(t, shared.Version)
	assert.Equal(t, "2.0.0", shared.Version.String())
}

func TestResolve_CascadeInvalidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// "parent" is first resolved at 1.0.0, which pulls in "orphan". A later
	// demand upgrades parent to 2.0.0, whose requirement list no longer
	// declares orphan; orphan's usage count drops to zero and it must be
	// absent from the output.
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "root").
		Return([]domain.Release{release(t, "1.0.0", "parent >= 1.0.0", "sibling >= 1.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "sibling").
		Return([]domain.Release{release(t, "1.0.0", "parent >= 2.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "orphan").
		Return([]domain.Release{release(t, "1.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "parent").
		Return([]domain.Release{
			release(t, "1.0.0", "orphan >= 1.0.0"),
			release(t, "2.0.0"),
		}, nil).
		Times(2)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "root", nil)
	require.NoError(t, err)

	parent, ok := find(resolved, "parent")
	require.True(t, ok)
	require.NotNil(t, parent.Version)
	assert.Equal(t, "2.0.0", parent.Version.String())

	_, ok = find(resolved, "orphan")
	assert.False(t, ok, "orphan should have been retracted with its superseded parent release")
}

func TestResolve_CycleTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "ying").
		Return([]domain.Release{release(t, "1.0.0", "yang >= 1.0.0")}, nil)
	registry.EXPECT().Releases(gomock.Any(), "yang").
		Return([]domain.Release{release(t, "1.0.0", "ying >= 1.0.0")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "ying", nil)
	require.NoError(t, err)
	assert.Len(t, resolved, 2)
}

func TestResolve_GameContentNeverLookedUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "space-exploration").
		Return([]domain.Release{release(t, "0.6.0", "base >= 1.1", "? alien-biomes")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "space-exploration", nil)
	require.NoError(t, err)

	base, ok := find(resolved, "base")
	require.True(t, ok)
	assert.Equal(t, domain.KindRequire, base.Kind)
	require.NotNil(t, base.Version)
	assert.Equal(t, "1.1.0", base.Version.String())

	optional, ok := find(resolved, "alien-biomes")
	require.True(t, ok)
	assert.Equal(t, domain.KindOptional, optional.Kind)
	assert.Nil(t, optional.Version)
}

func TestResolve_ConflictRecordedWithoutExpansion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "bobpower").
		Return([]domain.Release{release(t, "1.0.0", "!angelspower")}, nil)

	resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "bobpower", nil)
	require.NoError(t, err)

	conflict, ok := find(resolved, "angelspower")
	require.True(t, ok)
	assert.Equal(t, domain.KindConflict, conflict.Kind)
}

func TestResolve_ConflictOnInstalledModIsKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Releases(gomock.Any(), "bobpower").
		Return([]domain.Release{release(t, "1.0.0", "!angelspower")}, nil)

	snapshot := emptySnapshot()
	snapshot.Mods = []domain.InstalledMod{{Name: "angelspower", Version: version(t, "1.0.0")}}

	resolved, err := resolver.Resolve(context.Background(), registry, snapshot, "bobpower", nil)
	require.NoError(t, err)

	// The installed mod must not swallow the conflict: the entry has to
	// survive so the planner can schedule the removal.
	conflict, ok := find(resolved, "angelspower")
	require.True(t, ok)
	assert.Equal(t, domain.KindConflict, conflict.Kind)
}

func TestResolve_DeterministicOrder(t *testing.T) {
	run := func(t *testing.T) []domain.Requirement {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		registry := mocks.NewMockRegistry(ctrl)
		registry.EXPECT().Releases(gomock.Any(), "root").
			Return([]domain.Release{release(t, "1.0.0", "aaa >= 1.0.0", "bbb >= 1.0.0")}, nil)
		registry.EXPECT().Releases(gomock.Any(), "aaa").
			Return([]domain.Release{release(t, "1.0.0")}, nil)
		registry.EXPECT().Releases(gomock.Any(), "bbb").
			Return([]domain.Release{release(t, "1.0.0")}, nil)

		resolved, err := resolver.Resolve(context.Background(), registry, emptySnapshot(), "root", nil)
		require.NoError(t, err)
		return resolved
	}

	first := run(t)
	second := run(t)
	assert.Equal(t, first, second)
}
