package main

import "text/template"

var facadeTpl = template.Must(
	template.New("facade").
		Funcs(template.FuncMap{
			"isError": func(t string) bool { return t == "error" },
			"minus1":  func(n int) int { return n - 1 },
		}).
		Parse(`// Code generated by knotgen; DO NOT EDIT.
// Spec: {{.SpecPath}}
// Spec-SHA256: {{.SpecHash}}

package {{.Spec.Package}}

import (
{{- range .Imports }}
	{{- if .Name }}
	{{ .Name }} "{{ .Path }}"
	{{- else }}
	"{{ .Path }}"
	{{- end }}
{{- end }}
)

// {{.Spec.FacadeName}}InjectPolicyOnOverwrite controls behavior when a required dep is injected twice.
// NOTE: generated as a var to allow unit tests to cover all branches.
var {{.Spec.FacadeName}}InjectPolicyOnOverwrite = "{{.Spec.InjectPolicy.OnOverwrite}}"

{{- if gt (len .Spec.Optional) 0 }}

// Optional registry keys for {{.Spec.FacadeName}}.
const (
{{- range .Spec.Optional }}
	{{ $.Spec.FacadeName }}Optional{{ .Name }}Key = "{{ .RegistryKey }}"
{{- end }}
)

{{- end }}

type {{.Spec.FacadeName}} struct {
{{- if .Spec.Config.Enabled }}
	{{ .Spec.Config.FieldName }} {{ .Spec.Config.Type }}
{{- end }}
	svc *{{.Spec.ImplType}}

	injected map[string]bool

	// Optional wiring diagnostics (best-effort)
	optionalResolved map[string]string
	optionalMissing  map[string]string
}

// {{.Spec.PublicConstructorName}} creates a new builder/facade.
// You must call Build()/BuildWith()/MustBuild() before calling business methods.
{{- if .Spec.Config.Enabled }}
func {{.Spec.PublicConstructorName}}({{ .Spec.Config.ParamName }} {{ .Spec.Config.Type }}) *{{.Spec.FacadeName}} {
	return &{{.Spec.FacadeName}}{
		{{ .Spec.Config.FieldName }}: {{ .Spec.Config.ParamName }},
		svc:              {{.Spec.Constructor}}({{ .Spec.Config.ParamName }}),
		injected:         map[string]bool{},
		optionalResolved: map[string]string{},
		optionalMissing:  map[string]string{},
	}
}
{{- else }}
func {{.Spec.PublicConstructorName}}() *{{.Spec.FacadeName}} {
	return &{{.Spec.FacadeName}}{
		svc:              {{.Spec.Constructor}}(),
		injected:         map[string]bool{},
		optionalResolved: map[string]string{},
		optionalMissing:  map[string]string{},
	}
}
{{- end }}

// Clone copies the builder with the current injected state.
// Useful for tests and branching wiring paths.
func (b *{{.Spec.FacadeName}}) Clone() *{{.Spec.FacadeName}} {
	nb := &{{.Spec.FacadeName}}{
{{- if .Spec.Config.Enabled }}
		{{ .Spec.Config.FieldName }}: b.{{ .Spec.Config.FieldName }},
{{- end }}
		svc:              b.svc,
		injected:         map[string]bool{},
		optionalResolved: map[string]string{},
		optionalMissing:  map[string]string{},
	}
	for k, v := range b.injected {
		nb.injected[k] = v
	}
	for k, v := range b.optionalResolved {
		nb.optionalResolved[k] = v
	}
	for k, v := range b.optionalMissing {
		nb.optionalMissing[k] = v
	}
	return nb
}

// Reset discards injected bookkeeping and recreates the underlying implementation.
func (b *{{.Spec.FacadeName}}) Reset() *{{.Spec.FacadeName}} {
{{- if .Spec.Config.Enabled }}
	b.svc = {{.Spec.Constructor}}(b.{{ .Spec.Config.FieldName }})
{{- else }}
	b.svc = {{.Spec.Constructor}}()
{{- end }}
	b.injected = map[string]bool{}
	b.optionalResolved = map[string]string{}
	b.optionalMissing = map[string]string{}
	return b
}

// UnsafeImpl returns the underlying implementation pointer for composition root wiring.
// It must NOT be used to call business methods before Build()/MustBuild().
func (b *{{.Spec.FacadeName}}) UnsafeImpl() *{{.Spec.ImplType}} { return b.svc }

// Inject allows custom wiring for advanced usage.
// Prefer InjectX methods for required deps.
func (b *{{.Spec.FacadeName}}) Inject(fn func(*{{.Spec.ImplType}})) *{{.Spec.FacadeName}} {
	if fn != nil {
		fn(b.svc)
	}
	return b
}

{{ range .Spec.Required }}

// TryInject{{ .Name }} injects the required dependency {{ .Name }}.
// Unlike Inject{{ .Name }}, it returns an error instead of panicking.
func (b *{{ $.Spec.FacadeName }}) TryInject{{ .Name }}(dep {{ .Type }}) (*{{ $.Spec.FacadeName }}, error) {
	switch {{ $.Spec.FacadeName }}InjectPolicyOnOverwrite {
	case "error":
		if b.injected["{{ .Name }}"] {
			return nil, fmt.Errorf("{{ $.Spec.FacadeName }}: duplicate inject {{ .Name }}")
		}
	case "ignore":
		if b.injected["{{ .Name }}"] {
			return b, nil
		}
	case "overwrite":
		// allow overwriting
	default:
		return nil, fmt.Errorf("{{ $.Spec.FacadeName }}: invalid injectPolicy.onOverwrite=%s", {{ $.Spec.FacadeName }}InjectPolicyOnOverwrite)
	}
	b.svc.{{ .Field }} = dep
	b.injected["{{ .Name }}"] = true
	return b, nil
}

// Inject{{ .Name }} injects the required dependency {{ .Name }} and panics on policy violations.
// Prefer TryInject{{ .Name }} for safer wiring in tests.
func (b *{{ $.Spec.FacadeName }}) Inject{{ .Name }}(dep {{ .Type }}) *{{ $.Spec.FacadeName }} {
	nb, err := b.TryInject{{ .Name }}(dep)
	if err != nil {
		panic(err)
	}
	return nb
}
{{ end }}

// Missing returns the list of missing required dependency names at this moment.
// This is useful for debug UX before calling Build().
func (b *{{.Spec.FacadeName}}) Missing() []string {
	missing := []string{}
{{- range .Spec.Required }}
	if b.svc.{{ .Field }} == nil {
		missing = append(missing, "{{ .Name }}")
	}
{{- end }}
	return missing
}

// Explain returns a human-friendly summary of the wiring state.
func (b *{{.Spec.FacadeName}}) Explain() string {
	var sb strings.Builder
	m := b.Missing()
	if len(m) == 0 {
		sb.WriteString("required: complete\n")
	} else {
		sb.WriteString(fmt.Sprintf("required: missing=%v\n", m))
	}
{{- if gt (len .Spec.Optional) 0 }}
	if len(b.optionalResolved) > 0 {
		sb.WriteString("optional: resolved\n")
		for k, v := range b.optionalResolved {
			sb.WriteString(fmt.Sprintf("  - %s => %s\n", k, v))
		}
	}
	if len(b.optionalMissing) > 0 {
		sb.WriteString("optional: missing\n")
		for k, v := range b.optionalMissing {
			sb.WriteString(fmt.Sprintf("  - %s => %s\n", k, v))
		}
	}
{{- end }}
	return sb.String()
}

func (b *{{.Spec.FacadeName}}) Build() (*{{.Spec.ImplType}}, error) {
	return b.buildScoped("Build", nil)
}

// NOTE: Registry.Resolve must be (val any, ok bool, err error)
func (b *{{.Spec.FacadeName}}) BuildWith(reg di.Registry) (*{{.Spec.ImplType}}, error) {
{{ if gt (len .Spec.Optional) 0 }}
	if reg != nil {
		// IMPORTANT: declare once; reuse for each optional dep to avoid ":=" redeclare errors.
		var (
			v   any
			ok  bool
			err error
		)

{{ range .Spec.Optional }}
		v, ok, err = reg.Resolve({{ if $.Spec.Config.Enabled }}b.{{ $.Spec.Config.FieldName }}{{ else }}nil{{ end }}, "{{ .RegistryKey }}")
		if err != nil {
			return nil, fmt.Errorf("{{ $.Spec.FacadeName }}: optional dep {{ .Name }} resolve failed: %w", err)
		}
		if ok {
			casted, ok := v.({{ .Type }})
			if !ok {
				return nil, fmt.Errorf("{{ $.Spec.FacadeName }}: optional dep {{ .Name }} key={{ .RegistryKey }}: want {{ .Type }}, got %T", v)
			}
{{ if eq .Apply.Kind "setter" }}
			b.svc.{{ .Apply.Name }}(casted)
{{ else }}
			b.svc.{{ .Apply.Name }} = casted
{{ end }}
			b.optionalResolved["{{ .RegistryKey }}"] = fmt.Sprintf("%T", v)
		} else {
{{- if ne (print .DefaultExpr) "" }}
			def := {{ .DefaultExpr }}
{{- if eq .Apply.Kind "setter" }}
			b.svc.{{ .Apply.Name }}(def)
{{- else }}
			b.svc.{{ .Apply.Name }} = def
{{- end }}
			b.optionalMissing["{{ .RegistryKey }}"] = "used defaultExpr"
{{- else }}
			b.optionalMissing["{{ .RegistryKey }}"] = "not provided"
{{- end }}
		}
{{ end }}
	}
{{ end }}
	return b.buildScoped("BuildWith", nil)
}

func (b *{{.Spec.FacadeName}}) MustBuild() *{{.Spec.ImplType}} {
	svc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return svc
}

func (b *{{.Spec.FacadeName}}) buildScoped(ctx string, reqNames []string) (*{{.Spec.ImplType}}, error) {
	missing := []string{}

{{ range .Spec.Required }}
	isMissing{{ .Name }} := b.svc.{{ .Field }} == nil
{{ end }}

	check := func(name string, isMissing bool) {
		if isMissing {
			missing = append(missing, name)
		}
	}

	if reqNames == nil {
{{ range .Spec.Required }}
		check("{{ .Name }}", isMissing{{ .Name }})
{{ end }}
	} else {
		for _, n := range reqNames {
			switch n {
{{ range .Spec.Required }}
			case "{{ .Name }}":
				check("{{ .Name }}", isMissing{{ .Name }})
{{ end }}
			}
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: wiring incomplete (ctx=%s, missing=%v, spec=%s)",
			"{{ .Spec.FacadeName }}", ctx, missing, "{{ .SpecHash }}")
	}
	return b.svc, nil
}

{{ range .Spec.Methods }}
func (b *{{ $.Spec.FacadeName }}) {{ .Name }}(
{{- range .Params }}
	{{ .Name }} {{ .Type }},
{{- end }}
){{ if eq (len .Returns) 0 }}{{ else if eq (len .Returns) 1 }} {{ (index .Returns 0).Type }}{{ else }} ({{ range $i, $r := .Returns }}{{ if gt $i 0 }}, {{ end }}{{ $r.Type }}{{ end }}){{ end }} {
	{{- $m := . }}
	svc, err := b.buildScoped("{{ $m.Name }}", []string{
{{- range $m.Requires }}
		"{{ . }}",
{{- end }}
	})
	if err != nil {
{{- if eq (len $m.Returns) 0 }}
		return
{{- else if eq (len $m.Returns) 1 }}
{{- if isError (index $m.Returns 0).Type }}
		return err
{{- else }}
		var zero {{ (index $m.Returns 0).Type }}
		return zero
{{- end }}
{{- else }}
		{{- $last := index $m.Returns (minus1 (len $m.Returns)) }}
		{{- if not (isError $last.Type) }}
		panic(fmt.Errorf("knotgen: method {{ $m.Name }} last return must be error for safe codegen"))
		{{- end }}

{{- range $i, $r := $m.Returns }}
{{- if lt $i (minus1 (len $m.Returns)) }}
		var zero{{ $i }} {{ $r.Type }}
{{- end }}
{{- end }}

		return {{ range $i, $r := $m.Returns }}{{ if lt $i (minus1 (len $m.Returns)) }}zero{{ $i }}, {{ end }}{{ end }}err
{{- end }}
	}

	return svc.{{ $m.Name }}(
{{- range $m.Params }}
		{{ .Name }},
{{- end }}
	)
}
{{ end }}
`),
)

var graphTpl = template.Must(
	template.New("graph").
		Funcs(template.FuncMap{"export": exportName}).
		Parse(`// Code generated by knotgen; DO NOT EDIT.
// Graph: {{.GraphPath}}
// Graph-SHA256: {{.GraphHash}}

package {{.G.Package}}

import (
{{- range .Imports }}
	{{- if .Name }}
	{{ .Name }} "{{ .Path }}"
	{{- else }}
	"{{ .Path }}"
	{{- end }}
{{- end }}
)

{{- range .G.Roots}}
{{- $root := . }}

type {{.Name}}Result struct {
	{{- range .Services}}
	{{ export .Var }} *{{.ImplType}}
	{{- end}}
}

{{- if $.G.Config.Enabled }}
func {{.Name}}({{ $.G.Config.ParamName }} {{ $.G.Config.Type }}, reg di.Registry) ({{.Name}}Result, error) {
{{- else }}
func {{.Name}}(reg di.Registry) ({{.Name}}Result, error) {
{{- end }}
	var res {{.Name}}Result

	{{- range .Services}}
	{{.Var}}B := {{.FacadeCtor}}({{ if $.G.Config.Enabled }}{{ $.G.Config.ParamName }}{{ end }})
	{{- end}}

	{{- range .Wiring}}
	{{.To}}B.{{.Call}}({{.ArgFrom}}B.UnsafeImpl())
	{{- end}}

	{{- range .Services}}
	{{- if $root.BuildWithRegistry}}
	{{.Var}}Svc, err := {{.Var}}B.BuildWith(reg)
	{{- else}}
	{{.Var}}Svc, err := {{.Var}}B.Build()
	{{- end}}
	if err != nil {
		return res, fmt.Errorf("{{ $root.Name }}: build {{.Var}} failed: %w", err)
	}
	res.{{ export .Var }} = {{.Var}}Svc
	{{- end}}

	return res, nil
}

{{- end}}
`),
)
