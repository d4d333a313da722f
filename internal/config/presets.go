package config

var Presets = map[string]*Config{
	"gentle": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 120, Damping: 14},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"wobbly": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 180, Damping: 12},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"stiff": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 210, Damping: 20},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"molasses": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 280, Damping: 120},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"critical": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 100, Damping: 20},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"overdamped": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 100, Damping: 40},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"linear": {
		Law:   "curve",
		Curve: CurveConfig{Ease: "linear", Duration: DefaultDuration},
		Upper: 1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"ease": {
		Law:   "curve",
		Curve: CurveConfig{Ease: "ease", Duration: DefaultDuration},
		Upper: 1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"fast-out-slow-in": {
		Law:   "curve",
		Curve: CurveConfig{Ease: "fast-out-slow-in", Duration: DefaultDuration},
		Upper: 1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
	},
	"pulse": {
		Law:    "spring",
		Spring: SpringConfig{Mass: 1, Stiffness: 100, Damping: 10},
		Upper:  1, Target: 1, FPS: DefaultFPS, MaxTime: DefaultMaxTime,
		Repeat: RepeatConfig{Enabled: true, Reverse: true, Period: 1.0, Count: 4},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
