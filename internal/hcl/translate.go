package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclProfileFile represents the top-level structure of a profile file.
type hclProfileFile struct {
	Profiles []*hclProfile `hcl:"profile,block"`
}

// hclProfile is a single `profile "name" { ... }` block. Its attributes are
// kept raw so they can be matched against config field names and aliases.
type hclProfile struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// evalContext exposes string helpers to profile expressions, e.g.
// `endswith = reverse("gni")` or `contains = split(",", "a,e")`.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"lower":   stdlib.LowerFunc,
			"upper":   stdlib.UpperFunc,
			"reverse": stdlib.ReverseFunc,
			"concat":  stdlib.ConcatFunc,
			"split":   stdlib.SplitFunc,
			"join":    stdlib.JoinFunc,
		},
	}
}

// translateFile converts a parsed file body into the agnostic profile model.
func (l *Loader) translateFile(ctx context.Context, body hcl.Body, source string) ([]*config.Profile, error) {
	var parsed hclProfileFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", source, diags)
	}

	seen := make(map[string]bool, len(parsed.Profiles))
	profiles := make([]*config.Profile, 0, len(parsed.Profiles))
	for _, p := range parsed.Profiles {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q in %s", p.Name, source)
		}
		seen[p.Name] = true

		profile, diags := l.translateProfile(ctx, p, source)
		if diags.HasErrors() {
			return nil, fmt.Errorf("error parsing profile %q in %s: %w", p.Name, source, diags)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// translateProfile evaluates every attribute of a profile block and binds
// it onto the matching override.
func (l *Loader) translateProfile(ctx context.Context, p *hclProfile, source string) (*config.Profile, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	profile := &config.Profile{Name: p.Name, Source: source}

	attrs, diags := p.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	evalCtx := evalContext()
	for _, name := range names {
		attr := attrs[name]
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}

		if name == "description" {
			if err := decodeValue(val, cty.String, &profile.Description); err != nil {
				diags = append(diags, attributeError(attr, err))
			}
			continue
		}

		field, ok := config.ParseField(name)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected in a profile.", name),
				Subject:  &attr.NameRange,
			})
			continue
		}
		if err := l.converter.Assign(&profile.Overrides, field, val); err != nil {
			diags = append(diags, attributeError(attr, err))
			continue
		}
		logger.Debug("Bound profile attribute.", "profile", p.Name, "field", field, "type", val.Type().FriendlyName())
	}
	return profile, diags
}

func attributeError(attr *hcl.Attribute, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid value for " + attr.Name,
		Detail:   err.Error(),
		Subject:  attr.Expr.Range().Ptr(),
	}
}
