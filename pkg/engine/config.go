package engine

import (
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/go-viper/mapstructure/v2"
	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/prediction"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/spf13/viper"
)

type Config struct {
	GraphFile    string            `mapstructure:"graph_file"`
	CostVariable string            `mapstructure:"cost_variable" validate:"required"`
	Traversal    TraversalConfig   `mapstructure:"traversal"`
	Energy       *EnergyConfig     `mapstructure:"energy"`
	TurnDelay    *TurnDelayConfig  `mapstructure:"turn_delay"`
	GridSearch   GridSearchConfig  `mapstructure:"grid_search"`
	VertexSnap   *VertexSnapConfig `mapstructure:"vertex_snap"`
	Server       ServerConfig      `mapstructure:"server"`
	Workers      int               `mapstructure:"workers" validate:"gte=1"`
}

type TraversalConfig struct {
	DistanceUnit unit.DistanceUnit  `mapstructure:"distance_unit" validate:"required"`
	TimeUnit     unit.TimeUnit      `mapstructure:"time_unit" validate:"required"`
	SpeedUnit    unit.SpeedUnit     `mapstructure:"speed_unit" validate:"required"`
	Speeds       map[string]float64 `mapstructure:"speeds" validate:"dive,gt=0"`
}

type EnergyConfig struct {
	ModelType      prediction.ModelType `mapstructure:"model_type" validate:"required"`
	ModelPath      string               `mapstructure:"model_path" validate:"required"`
	SpeedUnit      unit.SpeedUnit       `mapstructure:"speed_unit" validate:"required"`
	GradeUnit      unit.GradeUnit       `mapstructure:"grade_unit" validate:"required"`
	EnergyRateUnit unit.EnergyRateUnit  `mapstructure:"energy_rate_unit" validate:"required"`
	CacheSize      int                  `mapstructure:"cache_size" validate:"gte=0"`
}

type TurnDelayConfig struct {
	TimeUnit unit.TimeUnit      `mapstructure:"time_unit" validate:"required"`
	Delays   map[string]float64 `mapstructure:"delays" validate:"dive,gte=0"`
}

type GridSearchConfig struct {
	Field string `mapstructure:"field"`
}

type VertexSnapConfig struct {
	ToleranceKm float64 `mapstructure:"tolerance_km" validate:"gt=0"`
}

type ServerConfig struct {
	Port      int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int           `mapstructure:"rate_burst" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph_file", "./data/graph.txt.bz2")
	v.SetDefault("cost_variable", pkg.DEFAULT_COST_VARIABLE)
	v.SetDefault("traversal.distance_unit", string(unit.Meters))
	v.SetDefault("traversal.time_unit", string(unit.Seconds))
	v.SetDefault("traversal.speed_unit", string(unit.KilometersPerHour))
	v.SetDefault("grid_search.field", pkg.DEFAULT_GRID_SEARCH_FIELD)
	v.SetDefault("server.port", 6060)
	v.SetDefault("server.timeout", "60s")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 0)
	v.SetDefault("workers", 4)
}

// LoadConfig decodes v into a validated Config. Unit fields are checked while decoding.
func LoadConfig(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "cannot decode config")
	}

	if err := ValidateStruct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	validate = validator.New()
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

// ValidateStruct runs the validate tags of s and returns the translated messages as one validation error.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	msgs := TranslateError(err)
	return util.WrapErrorf(err, util.ErrBadParamInput, "validation error: %s", strings.Join(msgs, "; "))
}

func TranslateError(err error) []string {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}
