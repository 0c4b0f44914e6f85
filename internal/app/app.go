package app

import "go.uber.org/zap"

// Bootstrap loads configuration from configPath and the environment, applies
// overrides and builds the Wire.
func Bootstrap(configPath string, overrides ...func(*Config)) (*Wire, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogPath)
	if err != nil {
		return nil, err
	}
	w, err := NewWire(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	w.Log.Debug("wired", zap.String("home", cfg.Home), zap.Bool("proving_key_cache", cfg.ProvingKeyCache))
	return w, nil
}
