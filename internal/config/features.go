package config

// Features names the firmware features a description switches away from
// their defaults. Disable entries are default features the generated
// manifest must drop, Enable entries are non-default features it must add.
type Features struct {
	Enable  []string
	Disable []string
}

// Empty reports whether every feature stays at its default. An empty set
// means the generated manifest needs no rewrite.
func (f Features) Empty() bool {
	return len(f.Enable) == 0 && len(f.Disable) == 0
}

// deriveFeatures computes the feature overrides for a validated description.
// Most toggles disable a default feature; indicator lighting is the one case
// that enables a non-default feature instead.
func deriveFeatures(cfg *KeyboardConfig, row2col bool) Features {
	var f Features

	if row2col {
		f.Disable = append(f.Disable, "col2row")
	}
	if cfg.Storage != nil && disabled(cfg.Storage.Enabled) {
		f.Disable = append(f.Disable, "storage")
	}
	if cfg.Vial != nil && disabled(cfg.Vial.Enabled) {
		f.Disable = append(f.Disable, "vial")
	}
	if cfg.Dependency != nil && disabled(cfg.Dependency.DefmtLog) {
		f.Disable = append(f.Disable, "defmt")
	}

	if cfg.Light.anyPin() {
		f.Enable = append(f.Enable, "controller")
	}

	return f
}
