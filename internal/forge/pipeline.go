package forge

import (
	"github.com/plugsmith/plugsmith/internal/validate"
)

// Request describes one generation invocation.
type Request struct {
	Format    Format
	Selector  string // bundle sub-template; required iff Format is multi-file-bundle
	Variables Variables
	OutputDir string
	Force     bool
}

// Pipeline runs one invocation through its full state machine:
// Requested → Substituted → Validated → {Deployed | Rejected}.
// Both end states are terminal; the pipeline holds no cross-invocation
// state and a Pipeline value is safe for concurrent use against distinct
// output paths.
type Pipeline struct {
	validator *validate.Validator
	deployer  *Deployer
}

// NewPipeline creates a pipeline over an immutable validator.
func NewPipeline(v *validate.Validator) *Pipeline {
	return &Pipeline{validator: v, deployer: NewDeployer()}
}

// Generate is the primary entry point. Content problems (syntax, type,
// anti-pattern, manifest, unresolved placeholders) come back as a rejected
// DeployResult with the complete diagnostic list; only caller errors
// (unknown template, bad variables) and environment errors (I/O) are
// returned as Go errors.
func (p *Pipeline) Generate(req Request) (*DeployResult, error) {
	tmpl, err := LookupTemplate(req.Format, req.Selector)
	if err != nil {
		return nil, err
	}

	cand, substDiags, err := Substitute(tmpl, req.Variables)
	if err != nil {
		return nil, err
	}

	res := p.validator.Check(cand.Artifact(), validate.Options{})
	res.Diagnostics = append(substDiags, res.Diagnostics...)

	return p.deployer.Deploy(cand, res, req.OutputDir, req.Force)
}
