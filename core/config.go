package core

import "fmt"

// Mode selects the solver's quality guarantee (spec §4.5, §6).
type Mode int

const (
	// ModeApprox leaves max_fp unconstrained unless explicitly set.
	ModeApprox Mode = iota
	// ModeExact forces MaxFP to the zero budget: the final solution
	// is guaranteed fp == 0, or empty if no such cover exists.
	ModeExact
)

// String implements fmt.Stringer for log and diagnostic output.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "EXACT"
	case ModeApprox:
		return "APPROX"
	default:
		return "unknown"
	}
}

// Effort selects the solver's search level. Only EffortLow changes what
// the solvers do; EffortMedium, EffortHigh and EffortExhaustive search
// alike.
type Effort int

const (
	// EffortLow restricts the structured solver to single-field
	// expressions (no field specialization).
	EffortLow Effort = iota
	EffortMedium
	EffortHigh
	// EffortExhaustive is reserved for small inputs (N<100, F<5).
	EffortExhaustive
)

func (e Effort) String() string {
	switch e {
	case EffortLow:
		return "low"
	case EffortMedium:
		return "medium"
	case EffortHigh:
		return "high"
	case EffortExhaustive:
		return "exhaustive"
	default:
		return "unknown"
	}
}

// SplitMethod selects how the tokenizer performs its raw split (spec §4.2).
type SplitMethod int

const (
	// SplitClassChange splits on alphabetic/digit/other transitions.
	SplitClassChange SplitMethod = iota
	// SplitChar makes every character its own raw token and forces
	// MinTokenLen to 1.
	SplitChar
)

func (s SplitMethod) String() string {
	switch s {
	case SplitClassChange:
		return "classchange"
	case SplitChar:
		return "char"
	default:
		return "unknown"
	}
}

// Invert selects how the greedy selector's complement solution is used
// (spec §4.5).
type Invert int

const (
	// InvertAuto picks whichever of base/inverted has lower cost,
	// subject to the max_fp constraint.
	InvertAuto Invert = iota
	// InvertNever always returns the base selection.
	InvertNever
	// InvertAlways returns the inverted selection, but only if it
	// respects max_fp; otherwise falls back to base.
	InvertAlways
)

func (v Invert) String() string {
	switch v {
	case InvertAuto:
		return "auto"
	case InvertNever:
		return "never"
	case InvertAlways:
		return "always"
	default:
		return "unknown"
	}
}

// budgetKind tags the variant held by a Budget.
type budgetKind int

const (
	budgetNone budgetKind = iota
	budgetZero
	budgetCount
	budgetFraction
)

// Budget is a hard constraint on a selection property (max_patterns,
// max_fp, max_fn). It is either absent (no limit), exactly zero, an
// absolute count (>= 1), or a fraction of |include| in (0, 1) — the
// four variants named in spec §4.5.
type Budget struct {
	kind  budgetKind
	value float64
}

// NoBudget returns a Budget with no limit ("None" in spec terms).
func NoBudget() Budget { return Budget{kind: budgetNone} }

// ZeroBudget returns a Budget meaning "zero, exactly".
func ZeroBudget() Budget { return Budget{kind: budgetZero} }

// CountBudget returns an absolute-count Budget. n must be >= 1.
func CountBudget(n int) Budget { return Budget{kind: budgetCount, value: float64(n)} }

// FractionBudget returns a Budget expressed as a fraction of |include|,
// in the open interval (0, 1).
func FractionBudget(f float64) Budget { return Budget{kind: budgetFraction, value: f} }

// Resolve turns the Budget into an absolute integer limit given the
// relevant population size n (|include| for max_fn/max_patterns-style
// budgets expressed as fractions). ok is false when there is no limit.
func (b Budget) Resolve(n int) (limit int, ok bool) {
	switch b.kind {
	case budgetNone:
		return 0, false
	case budgetZero:
		return 0, true
	case budgetCount:
		return int(b.value), true
	case budgetFraction:
		return int(b.value * float64(n)), true
	default:
		return 0, false
	}
}

func (b Budget) validate() error {
	switch b.kind {
	case budgetCount:
		if b.value < 1 {
			return fmt.Errorf("%w: absolute budget must be >= 1, got %v", ErrContradictoryBudget, b.value)
		}
	case budgetFraction:
		if b.value <= 0 || b.value >= 1 {
			return fmt.Errorf("%w: fractional budget must be in (0,1), got %v", ErrContradictoryBudget, b.value)
		}
	}
	return nil
}

// WeightSpec is the scalar-or-per-field tagged variant suggested by
// spec §9: avoid "sometimes a number, sometimes an object" typing.
type WeightSpec struct {
	uniform  float64
	perField map[string]float64
	isField  bool
}

// Uniform returns a WeightSpec that resolves to w for every field.
func Uniform(w float64) WeightSpec { return WeightSpec{uniform: w} }

// PerField returns a WeightSpec resolving field f to weights[f], or to
// 1.0 if f is absent from weights.
func PerField(weights map[string]float64) WeightSpec {
	cp := make(map[string]float64, len(weights))
	for k, v := range weights {
		cp[k] = v
	}
	return WeightSpec{perField: cp, isField: true}
}

// Resolve returns the weight that applies to field.
func (w WeightSpec) Resolve(field string) float64 {
	if !w.isField {
		return w.uniform
	}
	if v, ok := w.perField[field]; ok {
		return v
	}
	return 1.0
}

func (w WeightSpec) validate() error {
	if !w.isField {
		if w.uniform < 0 {
			return fmt.Errorf("%w: %v", ErrNegativeWeight, w.uniform)
		}
		return nil
	}
	for f, v := range w.perField {
		if v < 0 {
			return fmt.Errorf("%w: field %q weight %v", ErrNegativeWeight, f, v)
		}
	}
	return nil
}

// Weights holds the cost-function coefficients from spec §4.5.
type Weights struct {
	FP      WeightSpec
	FN      WeightSpec
	Pattern WeightSpec
	Op      WeightSpec
	WC      WeightSpec
	Len     WeightSpec
}

// DefaultWeights returns the default coefficients named in spec §4.5.
func DefaultWeights() Weights {
	return Weights{
		FP:      Uniform(1),
		FN:      Uniform(1),
		Pattern: Uniform(0.05),
		Op:      Uniform(0.02),
		WC:      Uniform(0.01),
		Len:     Uniform(0.001),
	}
}

// Budgets holds the three hard constraints from spec §4.5.
type Budgets struct {
	MaxPatterns Budget
	MaxFP       Budget
	MaxFN       Budget
}

// DefaultBudgets returns no hard limits at all.
func DefaultBudgets() Budgets {
	return Budgets{MaxPatterns: NoBudget(), MaxFP: NoBudget(), MaxFN: NoBudget()}
}

// FieldTokenizerConfig holds the per-field override of SplitMethod and
// MinTokenLen (spec §4.2: "Both may be provided globally or per field").
type FieldTokenizerConfig struct {
	Split       SplitMethod
	MinTokenLen int
}

// Config is PatternForge's validated, immutable run configuration. It
// is built exclusively through NewConfig and functional Options,
// mirroring the teacher's DefaultOptions()+Option pattern: each Option
// records a violation into an internal err field, and NewConfig
// surfaces the first one recorded.
type Config struct {
	Mode   Mode
	Effort Effort

	SplitMethod SplitMethod
	MinTokenLen int
	FieldTokenizers map[string]FieldTokenizerConfig

	Budgets Budgets
	Weights Weights

	Invert       Invert
	AllowedKinds map[Kind]bool

	PerWordSubstrings int
	MaxMultiSegments  int
	MaxCandidates     int

	FieldWeights WeightSpec

	// UseIDF enables the IDF tie-breaking multiplier described in
	// SPEC_FULL.md §4 (supplemented from original_source/engine/idf.py).
	UseIDF bool

	err error
}

// Option configures a Config via functional arguments.
type Option func(*Config)

// defaultConfig mirrors the teacher's DefaultOptions(): sane values,
// no violations recorded yet.
func defaultConfig() *Config {
	return &Config{
		Mode:              ModeApprox,
		Effort:            EffortMedium,
		SplitMethod:       SplitClassChange,
		MinTokenLen:       2,
		FieldTokenizers:   map[string]FieldTokenizerConfig{},
		Budgets:           DefaultBudgets(),
		Weights:           DefaultWeights(),
		Invert:            InvertAuto,
		AllowedKinds:      kindSet(AllKinds()...),
		PerWordSubstrings: 64,
		MaxMultiSegments:  4,
		MaxCandidates:     4000,
		FieldWeights:      Uniform(1),
	}
}

func kindSet(kinds ...Kind) map[Kind]bool {
	m := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// NewConfig builds a Config from opts, applying EXACT's max_fp=0
// shorthand (spec §4.5) after options run, then validates the result.
// It returns the first configuration error recorded by an Option, or
// by final validation, wrapped with its sentinel.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.Mode == ModeExact {
		c.Budgets.MaxFP = ZeroBudget()
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Mode != ModeExact && c.Mode != ModeApprox {
		return ErrInvalidMode
	}
	switch c.Effort {
	case EffortLow, EffortMedium, EffortHigh, EffortExhaustive:
	default:
		return ErrInvalidEffort
	}
	if c.MinTokenLen <= 0 {
		return ErrNonPositiveMinTokenLen
	}
	for field, ft := range c.FieldTokenizers {
		if ft.MinTokenLen <= 0 {
			return fmt.Errorf("%w: field %q", ErrNonPositiveMinTokenLen, field)
		}
	}
	for k := range c.AllowedKinds {
		if !k.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidKind, k)
		}
	}
	if err := c.Budgets.MaxPatterns.validate(); err != nil {
		return err
	}
	if err := c.Budgets.MaxFP.validate(); err != nil {
		return err
	}
	if err := c.Budgets.MaxFN.validate(); err != nil {
		return err
	}
	for _, w := range []WeightSpec{
		c.Weights.FP, c.Weights.FN, c.Weights.Pattern,
		c.Weights.Op, c.Weights.WC, c.Weights.Len, c.FieldWeights,
	} {
		if err := w.validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithMode sets EXACT or APPROX.
func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithEffort sets the search effort level.
func WithEffort(e Effort) Option {
	return func(c *Config) { c.Effort = e }
}

// WithSplitMethod sets the global tokenizer split method. SplitChar
// forces MinTokenLen to 1, matching spec §4.2 step 2.
func WithSplitMethod(s SplitMethod) Option {
	return func(c *Config) {
		c.SplitMethod = s
		if s == SplitChar {
			c.MinTokenLen = 1
		}
	}
}

// WithMinTokenLen sets the global minimum token length.
func WithMinTokenLen(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			c.err = fmt.Errorf("%w: %d", ErrNonPositiveMinTokenLen, n)
			return
		}
		c.MinTokenLen = n
	}
}

// WithFieldTokenizer overrides the tokenizer configuration for a
// single structured-mode field.
func WithFieldTokenizer(field string, split SplitMethod, minTokenLen int) Option {
	return func(c *Config) {
		if minTokenLen <= 0 && split != SplitChar {
			c.err = fmt.Errorf("%w: field %q", ErrNonPositiveMinTokenLen, field)
			return
		}
		if split == SplitChar {
			minTokenLen = 1
		}
		c.FieldTokenizers[field] = FieldTokenizerConfig{Split: split, MinTokenLen: minTokenLen}
	}
}

// WithBudgets overrides the hard selection budgets.
func WithBudgets(b Budgets) Option {
	return func(c *Config) { c.Budgets = b }
}

// WithWeights overrides the cost-function weights.
func WithWeights(w Weights) Option {
	return func(c *Config) { c.Weights = w }
}

// WithInvert sets the inversion policy.
func WithInvert(v Invert) Option {
	return func(c *Config) { c.Invert = v }
}

// WithAllowedKinds restricts candidate generation to the given Kinds.
func WithAllowedKinds(kinds ...Kind) Option {
	return func(c *Config) {
		for _, k := range kinds {
			if !k.Valid() {
				c.err = fmt.Errorf("%w: %q", ErrInvalidKind, k)
				return
			}
		}
		c.AllowedKinds = kindSet(kinds...)
	}
}

// WithBounds overrides per_word_substrings, max_multi_segments and
// max_candidates.
func WithBounds(perWordSubstrings, maxMultiSegments, maxCandidates int) Option {
	return func(c *Config) {
		c.PerWordSubstrings = perWordSubstrings
		c.MaxMultiSegments = maxMultiSegments
		c.MaxCandidates = maxCandidates
	}
}

// WithFieldWeights sets the structured-mode per-field score multiplier
// (spec §4.3, §4.8). A weight of 0 suppresses the field.
func WithFieldWeights(w WeightSpec) Option {
	return func(c *Config) { c.FieldWeights = w }
}

// WithIDF enables the IDF tie-breaking multiplier (SPEC_FULL.md §4).
func WithIDF(enabled bool) Option {
	return func(c *Config) { c.UseIDF = enabled }
}

// TokenizerFor resolves the effective SplitMethod/MinTokenLen for a
// field, falling back to the global settings when no per-field
// override was registered.
func (c *Config) TokenizerFor(field string) (SplitMethod, int) {
	if ft, ok := c.FieldTokenizers[field]; ok {
		return ft.Split, ft.MinTokenLen
	}
	return c.SplitMethod, c.MinTokenLen
}
