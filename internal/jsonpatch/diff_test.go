package jsonpatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"contribution-engine/internal/model"
)

func TestBetweenSettings(t *testing.T) {
	before := model.ContributionSetting{ContributionType: model.ContributionPercent, ContributionValue: 6}
	after := model.ContributionSetting{ContributionType: model.ContributionDollar, ContributionValue: 500}

	fwd, bwd, err := Between(before, after)
	require.NoError(t, err)

	require.Equal(t, []model.PatchOperation{
		{Op: "replace", Path: "/contributionType", Value: "dollar"},
		{Op: "replace", Path: "/contributionValue", Value: float64(500)},
	}, fwd)
	require.Equal(t, []model.PatchOperation{
		{Op: "replace", Path: "/contributionType", Value: "percent"},
		{Op: "replace", Path: "/contributionValue", Value: float64(6)},
	}, bwd)
}

func TestBetweenUnchanged(t *testing.T) {
	s := model.DefaultSettings()

	fwd, bwd, err := Between(s, s)
	require.NoError(t, err)
	require.Empty(t, fwd)
	require.Empty(t, bwd)
	require.NotNil(t, fwd)
}

func TestBetweenFromNothing(t *testing.T) {
	fwd, bwd, err := Between(nil, model.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, fwd, 1)
	require.Equal(t, "replace", fwd[0].Op)
	require.Equal(t, "", fwd[0].Path)
	require.Len(t, bwd, 1)
	require.Nil(t, bwd[0].Value)
}

func TestBetweenNestedDocuments(t *testing.T) {
	before := map[string]any{"a/b": 1, "list": []any{1, 2, 3}, "same": []any{"x"}, "gone": true, "obj": map[string]any{"k": 1}}
	after := map[string]any{"a/b": 2, "list": []any{1}, "same": []any{"x"}, "new": "x", "obj": "flat"}

	fwd, bwd, err := Between(before, after)
	require.NoError(t, err)

	require.Equal(t, []model.PatchOperation{
		{Op: "remove", Path: "/gone"},
		{Op: "replace", Path: "/a~1b", Value: float64(2)},
		{Op: "replace", Path: "/list", Value: []any{float64(1)}},
		{Op: "add", Path: "/new", Value: "x"},
		{Op: "replace", Path: "/obj", Value: "flat"},
	}, fwd)
	require.Equal(t, []model.PatchOperation{
		{Op: "add", Path: "/gone", Value: true},
		{Op: "replace", Path: "/a~1b", Value: float64(1)},
		{Op: "replace", Path: "/list", Value: []any{float64(1), float64(2), float64(3)}},
		{Op: "remove", Path: "/new"},
		{Op: "replace", Path: "/obj", Value: map[string]any{"k": float64(1)}},
	}, bwd)
}
