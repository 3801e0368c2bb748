package main

import (
	"fmt"
	"strings"
)

// Imports carries the two import paths the templates may need.
type Imports struct {
	DI     string `json:"di"`
	Config string `json:"config"`
}

// ConfigSpec makes config truly optional.
// If Enabled=false (default), the generator will NOT:
// - import config
// - store cfg on the builder
// - require cfg in the builder ctor
// - pass cfg to the service constructor
type ConfigSpec struct {
	Enabled bool `json:"enabled"`

	// Optional: override inferred import path (e.g. "github.com/acme/proj/config")
	Import string `json:"import"`

	// Optional: override the type used in builder ctor & field (default "config.Config")
	Type string `json:"type"`

	// Optional: override the field name in the builder (default "cfg")
	FieldName string `json:"fieldName"`

	// Optional: override the parameter name in the builder constructor (default "cfg")
	ParamName string `json:"paramName"`
}

// InjectPolicy controls what happens when a required dep is injected twice.
type InjectPolicy struct {
	OnOverwrite string `json:"onOverwrite"` // "error" | "overwrite" | "ignore"
}

// RequiredDep is a dependency the facade refuses to build without.
type RequiredDep struct {
	Name    string `json:"name"`
	Field   string `json:"field"`
	Type    string `json:"type"`
	Nilable bool   `json:"nilable"`
}

// OptionalApply says how an optional dep is attached: a setter call or a field write.
type OptionalApply struct {
	Kind string `json:"kind"` // "setter" | "field"
	Name string `json:"name"`
}

// OptionalDep is resolved from a di.Registry at BuildWith time.
type OptionalDep struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	RegistryKey string        `json:"registryKey"`
	Apply       OptionalApply `json:"apply"`

	// Optional: if set, the generator emits this expression when the registry
	// lookup misses (ok=false). Example: "NoopAuditor{}" or "&NoopMetrics{}"
	DefaultExpr string `json:"defaultExpr"`
}

// MethodParam is one parameter of a generated safe method wrapper.
type MethodParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodReturn is one return value of a generated safe method wrapper.
type MethodReturn struct {
	Type string `json:"type"`
}

// MethodSpec describes a safe wrapper that validates wiring before delegating.
type MethodSpec struct {
	Name     string         `json:"name"`
	Params   []MethodParam  `json:"params"`
	Returns  []MethodReturn `json:"returns"`
	Requires []string       `json:"requires"`
}

// FacadeSpec is the top-level *.inject.json document.
type FacadeSpec struct {
	Package       string `json:"package"`
	WrapperBase   string `json:"wrapperBase"`
	VersionSuffix string `json:"versionSuffix"`
	ImplType      string `json:"implType"`

	// Constructor is a symbol name (in the same package) for the service constructor.
	// It will be called as:
	// - Constructor(cfg) if Config.Enabled=true
	// - Constructor()    if Config.Enabled=false
	Constructor string `json:"constructor"`

	Imports Imports    `json:"imports"`
	Config  ConfigSpec `json:"config"`

	FacadeName            string       `json:"facadeName"`
	PublicConstructorName string       `json:"publicConstructorName"`
	InjectPolicy          InjectPolicy `json:"injectPolicy"`

	// if true, the spec indicates cycle wiring; UnsafeImpl() is generated regardless
	Cyclic bool `json:"cyclic"`

	Required []RequiredDep `json:"required"`
	Optional []OptionalDep `json:"optional"`
	Methods  []MethodSpec  `json:"methods"`
}

// GraphService is one service constructed inside a composition root.
type GraphService struct {
	Var        string `json:"var"`
	FacadeCtor string `json:"facadeCtor"` // symbol name, called with cfg if Config.Enabled=true
	FacadeType string `json:"facadeType"`
	ImplType   string `json:"implType"`
}

// GraphWire is one explicit wiring step between builders.
type GraphWire struct {
	To      string `json:"to"`
	Call    string `json:"call"`
	ArgFrom string `json:"argFrom"`
}

// GraphRoot is one generated composition-root function.
type GraphRoot struct {
	Name              string         `json:"name"`
	BuildWithRegistry bool           `json:"buildWithRegistry"`
	Services          []GraphService `json:"services"`
	Wiring            []GraphWire    `json:"wiring"`
}

// GraphSpec is the top-level graph.json document.
type GraphSpec struct {
	Package string `json:"package"`

	Imports Imports    `json:"imports"`
	Config  ConfigSpec `json:"config"`

	Roots []GraphRoot `json:"roots"`
}

func applyConfigDefaults(c *ConfigSpec) {
	if c == nil {
		return
	}
	if c.Type == "" {
		c.Type = "config.Config"
	}
	if c.FieldName == "" {
		c.FieldName = "cfg"
	}
	if c.ParamName == "" {
		c.ParamName = "cfg"
	}
}

func validateFacadeSpec(s *FacadeSpec) error {
	req := func(name, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("spec missing: %s", name)
		}
		return nil
	}
	for _, check := range []struct{ name, v string }{
		{"package", s.Package},
		{"wrapperBase", s.WrapperBase},
		{"versionSuffix", s.VersionSuffix},
		{"implType", s.ImplType},
		{"constructor", s.Constructor},
	} {
		if err := req(check.name, check.v); err != nil {
			return err
		}
	}

	if len(s.Required) == 0 {
		return fmt.Errorf("spec required must be non-empty")
	}
	for _, d := range s.Required {
		if d.Name == "" || d.Field == "" || d.Type == "" {
			return fmt.Errorf("required dep must have name/field/type")
		}
		if !d.Nilable {
			return fmt.Errorf("required dep must set nilable=true (generator emits nil checks)")
		}
	}
	for _, o := range s.Optional {
		if o.Name == "" || o.Type == "" || o.RegistryKey == "" || o.Apply.Kind == "" || o.Apply.Name == "" {
			return fmt.Errorf("optional dep must have name/type/registryKey/apply{kind,name}")
		}
		if o.Apply.Kind != "setter" && o.Apply.Kind != "field" {
			return fmt.Errorf("optional.apply.kind must be 'setter' or 'field'")
		}
	}
	for _, m := range s.Methods {
		if m.Name == "" {
			return fmt.Errorf("method must have name")
		}
	}

	switch s.InjectPolicy.OnOverwrite {
	case "", "error", "ignore", "overwrite":
	default:
		return fmt.Errorf("injectPolicy.onOverwrite must be one of: error|ignore|overwrite")
	}
	return nil
}

func validateGraphSpec(g *GraphSpec) error {
	if strings.TrimSpace(g.Package) == "" {
		return fmt.Errorf("graph spec missing package")
	}
	if len(g.Roots) == 0 {
		return fmt.Errorf("graph spec roots must be non-empty")
	}
	for _, r := range g.Roots {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("graph root must have name")
		}
		for _, svc := range r.Services {
			if svc.Var == "" || svc.FacadeCtor == "" || svc.ImplType == "" {
				return fmt.Errorf("graph root %s: service must have var/facadeCtor/implType", r.Name)
			}
		}
	}
	return nil
}
