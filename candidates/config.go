package candidates

// Config bundles the generation-time bounds and options from spec §4.3
// that do not already live on core.Config, so the package can be
// exercised without threading the whole solver configuration through
// it. Generate reads MinTokenLen, PerWordSubstrings, MaxMultiSegments,
// MaxCandidates and FieldWeight directly off the caller-supplied
// core.Config and field name; UseIDF is the one generation-specific
// knob not already modeled there.
type Config struct {
	// UseIDF enables the rarity tie-break described in SPEC_FULL.md §4:
	// score *= 1 + log(1 + N/(df+1)), df = number of include rows
	// containing the token. Off by default (core.Config.UseIDF turns it
	// on as well); never changes which kind
	// wins a length/wildcard tie, only the ranking within a kind.
	UseIDF bool
}
