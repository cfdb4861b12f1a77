// Package config loads and watches tablestorm settings.
//
// Settings live in a single TOML or YAML file, chosen by extension. Keys
// that are absent keep their defaults; unknown keys are rejected.
//
//	cfg, err := config.Load("tablestorm.toml")
//	if err != nil {
//	    return err
//	}
//	styles := cfg.Styles()
//
// Watch reloads the file whenever it changes on disk:
//
//	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
//	    if err != nil {
//	        logger.Warn("config reload failed", "error", err)
//	        return
//	    }
//	    apply(cfg)
//	})
package config
