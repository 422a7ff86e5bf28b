package llm

// Agent is the per-entity component driving strategic queries: named
// role/personality/context/parser pieces, the query cadence, and
// bookkeeping for in-flight requests, retries, and cooldown.
type Agent struct {
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Context     string `json:"context"`
	Parser      string `json:"parser"`

	QueryInterval int `json:"query_interval"`
	Priority      int `json:"priority"`
	MaxRetries    int `json:"max_retries"`
	CooldownTicks int `json:"cooldown_ticks"`

	LastQueryTick     uint64 `json:"last_query_tick"`
	Pending           bool   `json:"pending"`
	ConsecutiveErrors int    `json:"consecutive_errors"`
	CooldownUntil     uint64 `json:"cooldown_until"`
}
