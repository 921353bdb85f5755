package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// OffsetCrop describes where a value is rendered relative to a text anchor:
// move Offset pixels from the anchor center on the given side, then crop a
// Width×Height region there.
type OffsetCrop struct {
	Side   string `mapstructure:"side"` // left | right | below
	Offset int    `mapstructure:"offset"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// HSVRange mirrors vision.ColorRange in configuration form.
type HSVRange struct {
	HueMin float64 `mapstructure:"hue_min"`
	HueMax float64 `mapstructure:"hue_max"`
	SatMin float64 `mapstructure:"sat_min"`
	SatMax float64 `mapstructure:"sat_max"`
	ValMin float64 `mapstructure:"val_min"`
	ValMax float64 `mapstructure:"val_max"`
}

// Recognition holds the OCR sidecar endpoints the CLI adapter talks to.
type Recognition struct {
	PrimaryURL   string `mapstructure:"primary_url"`
	SecondaryURL string `mapstructure:"secondary_url"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
}

// Classifier holds classification thresholds. Keyword rules themselves are
// fixed vocabulary and live with the classifier.
type Classifier struct {
	WhitePixelFloor float64 `mapstructure:"white_pixel_floor"` // 0..255 intensity
	WhiteRatio      float64 `mapstructure:"white_ratio"`
}

// Extract carries every geometric and colorimetric constant the extractors
// need. The values are resolution-dependent; shipping them as data means a
// resolution change is a config change, not a code change.
type Extract struct {
	ConfidenceFloor float64 `mapstructure:"confidence_floor"`
	RowYThreshold   float64 `mapstructure:"row_y_threshold"`
	UpscaleFactor   int     `mapstructure:"upscale_factor"`

	MatchStatCrop  OffsetCrop `mapstructure:"match_stat_crop"`
	SimStatCrop    OffsetCrop `mapstructure:"sim_stat_crop"`
	MVPCrop        OffsetCrop `mapstructure:"mvp_crop"`
	SubCrop        OffsetCrop `mapstructure:"sub_crop"`
	GoalCrop       OffsetCrop `mapstructure:"goal_crop"`
	CaptainXOffset int        `mapstructure:"captain_x_offset"`

	GoldHSV  HSVRange `mapstructure:"gold_hsv"`
	GreenHSV HSVRange `mapstructure:"green_hsv"`

	MVPGoldRatio   float64 `mapstructure:"mvp_gold_ratio"`
	GoalWhiteRatio float64 `mapstructure:"goal_white_ratio"`
	SubGreenPixels int     `mapstructure:"sub_green_pixels"`

	AttributeCard CropRect  `mapstructure:"attribute_card"`
	PlaystyleRows []IconRow `mapstructure:"playstyle_rows"`

	TemplateDir        string  `mapstructure:"template_dir"`
	TemplateThreshold  float64 `mapstructure:"template_threshold"`
	EmptySlotBrightness float64 `mapstructure:"empty_slot_brightness"`
	GoldenMinPixels    int     `mapstructure:"golden_min_pixels"`
}

// CropRect is an absolute pixel rectangle in screenshot space.
type CropRect struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// IconRow describes a horizontal strip of equally sized, equally spaced
// icon slots starting at (X, Y).
type IconRow struct {
	X     int `mapstructure:"x"`
	Y     int `mapstructure:"y"`
	Size  int `mapstructure:"size"`
	Gap   int `mapstructure:"gap"`
	Count int `mapstructure:"count"`
}

// Cache locates the durable report cache.
type Cache struct {
	Dir string `mapstructure:"dir"`
}

// Backend locates the remote report backend. An empty URL disables
// submission over the network; reports are then only logged.
type Backend struct {
	URL        string `mapstructure:"url"`
	Token      string `mapstructure:"token"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// Watcher configures the squad-screenshot backlog sweep.
type Watcher struct {
	Dir         string   `mapstructure:"dir"`
	Concurrency int      `mapstructure:"concurrency"`
	HeaderCrop  CropRect `mapstructure:"header_crop"`
}

type Config struct {
	Recognition Recognition `mapstructure:"recognition"`
	Classifier  Classifier  `mapstructure:"classifier"`
	Extract     Extract     `mapstructure:"extract"`
	Cache       Cache       `mapstructure:"cache"`
	Backend     Backend     `mapstructure:"backend"`
	Watcher     Watcher     `mapstructure:"watcher"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("recognition.primary_url", "http://127.0.0.1:8868/recognize")
	v.SetDefault("recognition.secondary_url", "")
	v.SetDefault("recognition.timeout_sec", 30)

	v.SetDefault("classifier.white_pixel_floor", 200)
	v.SetDefault("classifier.white_ratio", 0.5)

	v.SetDefault("extract.confidence_floor", 0.6)
	v.SetDefault("extract.row_y_threshold", 20)
	v.SetDefault("extract.upscale_factor", 4)

	v.SetDefault("extract.match_stat_crop", map[string]any{
		"side": "left", "offset": 505, "width": 175, "height": 70,
	})
	v.SetDefault("extract.sim_stat_crop", map[string]any{
		"side": "below", "offset": -25, "width": 400, "height": 290,
	})
	v.SetDefault("extract.mvp_crop", map[string]any{
		"side": "left", "offset": 190, "width": 30, "height": 30,
	})
	v.SetDefault("extract.sub_crop", map[string]any{
		"side": "right", "offset": 0, "width": 40, "height": 25,
	})
	v.SetDefault("extract.goal_crop", map[string]any{
		"side": "left", "offset": 85, "width": 30, "height": 30,
	})
	v.SetDefault("extract.captain_x_offset", 40)

	v.SetDefault("extract.gold_hsv", map[string]any{
		"hue_min": 30.0, "hue_max": 70.0,
		"sat_min": 0.4, "sat_max": 1.0,
		"val_min": 0.4, "val_max": 1.0,
	})
	v.SetDefault("extract.green_hsv", map[string]any{
		"hue_min": 100.0, "hue_max": 160.0,
		"sat_min": 0.4, "sat_max": 1.0,
		"val_min": 0.2, "val_max": 1.0,
	})

	v.SetDefault("extract.mvp_gold_ratio", 0.5)
	v.SetDefault("extract.goal_white_ratio", 0.5)
	v.SetDefault("extract.sub_green_pixels", 20)

	v.SetDefault("extract.attribute_card", map[string]any{
		"x": 1700, "y": 300, "width": 850, "height": 660,
	})
	v.SetDefault("extract.playstyle_rows", []map[string]any{
		{"x": 2175, "y": 821, "size": 55, "gap": 9, "count": 4},
		{"x": 2206, "y": 875, "size": 55, "gap": 9, "count": 3},
	})

	v.SetDefault("extract.template_dir", "assets/playstyles")
	v.SetDefault("extract.template_threshold", 0.5)
	v.SetDefault("extract.empty_slot_brightness", 60)
	v.SetDefault("extract.golden_min_pixels", 50)

	v.SetDefault("cache.dir", "local_cache")

	v.SetDefault("backend.url", "")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.timeout_sec", 30)

	v.SetDefault("watcher.dir", "local_player_data")
	v.SetDefault("watcher.concurrency", 4)
	v.SetDefault("watcher.header_crop", map[string]any{
		"x": 400, "y": 225, "width": 1350, "height": 125,
	})
}

// Load reads configuration from path, or returns pure defaults when path is
// empty. Unknown keys are ignored; missing keys fall back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}
