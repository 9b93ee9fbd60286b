package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/fsutil"
)

// ErrProfile is returned for a run profile that cannot be read or decoded.
var ErrProfile = errors.New("config: invalid run profile")

// Profile is the decoded form of a run-profile file. Nil fields were not set.
type Profile struct {
	Animate   *bool             `hcl:"animate,optional"`
	Delay     *string           `hcl:"delay,optional"`
	Color     *bool             `hcl:"color,optional"`
	Strategy  *string           `hcl:"strategy,optional"`
	Workers   *int              `hcl:"workers,optional"`
	MaxSteps  *int              `hcl:"max_steps,optional"`
	LogLevel  *string           `hcl:"log_level,optional"`
	LogFormat *string           `hcl:"log_format,optional"`
	Lang      *string           `hcl:"lang,optional"`
	ShowPath  *bool             `hcl:"show_path,optional"`
	Broadcast *BroadcastProfile `hcl:"broadcast,block"`
}

// BroadcastProfile is the optional broadcast block of a run profile.
type BroadcastProfile struct {
	URL                *string `hcl:"url,optional"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}

// LoadProfile parses the HCL run profile at path. A directory is read as a
// set of .hcl files applied in lexical order, later files overriding earlier
// ones. env is exposed to expressions as the object variable "env".
func LoadProfile(ctx context.Context, path string, env map[string]string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading run profile.", "path", path)

	files, err := fsutil.ResolveFiles(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfile, err)
	}

	parser := hclparse.NewParser()
	merged := &Profile{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrProfile, file, diags)
		}
		p, err := decodeProfile(hclFile.Body, env)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		merged.merge(p)
	}
	logger.Debug("Run profile loaded.", "files", len(files))
	return merged, nil
}

// ParseProfile is LoadProfile over in-memory source; filename is used in
// diagnostics only.
func ParseProfile(src []byte, filename string, env map[string]string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrProfile, filename, diags)
	}
	return decodeProfile(file.Body, env)
}

func decodeProfile(body hcl.Body, env map[string]string) (*Profile, error) {
	var p Profile
	if diags := gohcl.DecodeBody(body, evalContext(env), &p); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode: %w", ErrProfile, diags)
	}
	return &p, nil
}

func evalContext(env map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		if !hclsyntax.ValidIdentifier(k) {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vals),
		},
	}
}

// ApplyProfile overrides s with every attribute set in p.
func (s *Settings) ApplyProfile(p *Profile) error {
	if p == nil {
		return nil
	}
	setIf(&s.Animate, p.Animate)
	setIf(&s.Color, p.Color)
	setIf(&s.Strategy, p.Strategy)
	setIf(&s.Workers, p.Workers)
	setIf(&s.MaxSteps, p.MaxSteps)
	setIf(&s.LogLevel, p.LogLevel)
	setIf(&s.LogFormat, p.LogFormat)
	setIf(&s.Lang, p.Lang)
	setIf(&s.ShowPath, p.ShowPath)
	if p.Delay != nil {
		d, err := time.ParseDuration(*p.Delay)
		if err != nil {
			return fmt.Errorf("%w: delay: %w", ErrProfile, err)
		}
		s.Delay = d
	}
	if b := p.Broadcast; b != nil {
		setIf(&s.Broadcast.URL, b.URL)
		setIf(&s.Broadcast.Namespace, b.Namespace)
		setIf(&s.Broadcast.Event, b.Event)
		setIf(&s.Broadcast.InsecureSkipVerify, b.InsecureSkipVerify)
	}
	return nil
}

// merge copies every attribute set in o over p.
func (p *Profile) merge(o *Profile) {
	override(&p.Animate, o.Animate)
	override(&p.Delay, o.Delay)
	override(&p.Color, o.Color)
	override(&p.Strategy, o.Strategy)
	override(&p.Workers, o.Workers)
	override(&p.MaxSteps, o.MaxSteps)
	override(&p.LogLevel, o.LogLevel)
	override(&p.LogFormat, o.LogFormat)
	override(&p.Lang, o.Lang)
	override(&p.ShowPath, o.ShowPath)
	if o.Broadcast == nil {
		return
	}
	if p.Broadcast == nil {
		p.Broadcast = &BroadcastProfile{}
	}
	override(&p.Broadcast.URL, o.Broadcast.URL)
	override(&p.Broadcast.Namespace, o.Broadcast.Namespace)
	override(&p.Broadcast.Event, o.Broadcast.Event)
	override(&p.Broadcast.InsecureSkipVerify, o.Broadcast.InsecureSkipVerify)
}

func override[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
