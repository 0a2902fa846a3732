package simulator

// Config contains the configurable items for this package
type Config struct {
	TickSpacing       int32  `toml:"tick_spacing"`
	TWAPWindowSeconds int64  `toml:"twap_window_seconds"`
	MaxFeeCollect     uint64 `toml:"max_fee_collect"` // 0 collects everything owed
}

func NewDefaultConfig() Config {
	return Config{
		TickSpacing:       64,
		TWAPWindowSeconds: 300,
	}
}
