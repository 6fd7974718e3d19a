package vtxcache

// Hooks are callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// hot paths.
type Hooks interface {
	// An entry was deleted by the cache on read. reason is one of the
	// Reason* constants.
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// GenStore errors. count is the number of keys involved.
	GenSnapshotError(count int, err error)
	GenBumpError(storageKey string, err error)

	// Both gen bump and delete failed during Invalidate (likely backend outage).
	InvalidateOutage(key string, bumpErr, delErr error)
}

// Self-heal reasons.
const (
	ReasonCorrupt            = "corrupt"
	ReasonGenMismatch        = "gen_mismatch"
	ReasonTooShort           = "too_short"
	ReasonInvalidPrefix      = "invalid_prefix"
	ReasonUnsupportedVersion = "unsupported_version"
	ReasonTooLarge           = "too_large"
	ReasonValueDecode        = "value_decode"
)

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)               {}
func (NopHooks) ProviderSetRejected(string)            {}
func (NopHooks) GenSnapshotError(int, error)           {}
func (NopHooks) GenBumpError(string, error)            {}
func (NopHooks) InvalidateOutage(string, error, error) {}
