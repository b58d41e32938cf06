// Package config loads and validates the simulator's configuration.
//
// Values come from three layers, each overriding the last: built-in
// defaults, the YAML file, then PDUSIM_* environment variables. The
// result is validated once at startup and never reloaded.
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.PDU.Model)
//
// When no file exists, LoadDefaults applies the environment overrides
// directly on the defaults.
//
// The JWT secret and admin password are better supplied through the
// environment (PDUSIM_JWT_SECRET, PDUSIM_ADMIN_PASSWORD) than committed
// to a config file.
package config
