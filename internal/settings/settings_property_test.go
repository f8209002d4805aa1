//go:build property
// +build property

package settings

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMergeProperties pins the profile merge invariant: the merged profile is
// a strict superset-with-overrides of the base profile.
func TestMergeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genSettings := gen.MapOf(
		gen.RegexMatch(`^[A-Z][A-Z_]{0,14}$`),
		gen.OneGenOf(
			gen.AlphaString().Map(func(s string) any { return s }),
			gen.IntRange(-1000, 1000).Map(func(i int) any { return i }),
			gen.Bool().Map(func(b bool) any { return b }),
		),
	).Map(func(m map[string]any) Settings { return Settings(m) })

	properties.Property("override keys take the override value", prop.ForAll(
		func(base, overrides Settings) bool {
			merged := Merge(base, overrides)
			for k, v := range overrides {
				if merged[k] != v {
					return false
				}
			}
			return true
		},
		genSettings, genSettings,
	))

	properties.Property("non-overridden keys keep the base value", prop.ForAll(
		func(base, overrides Settings) bool {
			merged := Merge(base, overrides)
			for k, v := range base {
				if _, ok := overrides[k]; ok {
					continue
				}
				if merged[k] != v {
					return false
				}
			}
			return true
		},
		genSettings, genSettings,
	))

	properties.Property("no keys appear from nowhere", prop.ForAll(
		func(base, overrides Settings) bool {
			merged := Merge(base, overrides)
			for k := range merged {
				_, inBase := base[k]
				_, inOverrides := overrides[k]
				if !inBase && !inOverrides {
					return false
				}
			}
			return true
		},
		genSettings, genSettings,
	))

	properties.Property("inputs stay unmodified", prop.ForAll(
		func(base, overrides Settings) bool {
			baseCopy := Merge(base, nil)
			overridesCopy := Merge(overrides, nil)
			_ = Merge(base, overrides)
			for k, v := range baseCopy {
				if base[k] != v {
					return false
				}
			}
			for k, v := range overridesCopy {
				if overrides[k] != v {
					return false
				}
			}
			return true
		},
		genSettings, genSettings,
	))

	properties.TestingRun(t)
}

// TestRenderProperties pins render determinism for scalar settings.
func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genScalars := gen.MapOf(
		gen.RegexMatch(`^[A-Z][A-Z_]{0,14}$`),
		gen.AlphaString().Map(func(s string) any { return s }),
	).Map(func(m map[string]any) Settings { return Settings(m) })

	properties.Property("equal settings render to identical bytes", prop.ForAll(
		func(s Settings) bool {
			first, err1 := Render(s)
			second, err2 := Render(Merge(s, nil))
			if err1 != nil || err2 != nil {
				return false
			}
			return string(first) == string(second)
		},
		genScalars,
	))

	properties.TestingRun(t)
}
