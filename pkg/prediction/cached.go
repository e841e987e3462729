package prediction

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

type cacheKey struct {
	speed     uint64
	speedUnit unit.SpeedUnit
	grade     uint64
}

type cachedRate struct {
	rate     float64
	rateUnit unit.EnergyRateUnit
}

// CachedModel memoizes a Model on the exact bits of its inputs. Road networks reuse a small set of
// (speed, grade) pairs, so most edges hit the cache.
type CachedModel struct {
	model Model
	cache *lru.Cache[cacheKey, cachedRate]
}

func NewCachedModel(model Model, size int) (*CachedModel, error) {
	cache, err := lru.New[cacheKey, cachedRate](size)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "cannot create prediction cache of size %d", size)
	}
	return &CachedModel{model: model, cache: cache}, nil
}

func (c *CachedModel) Predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error) {
	key := cacheKey{speed: math.Float64bits(speed), speedUnit: speedUnit, grade: math.Float64bits(grade)}
	if v, ok := c.cache.Get(key); ok {
		cacheLookups.WithLabelValues("hit").Inc()
		return v.rate, v.rateUnit, nil
	}
	cacheLookups.WithLabelValues("miss").Inc()

	rate, rateUnit, err := c.model.Predict(speed, speedUnit, grade)
	if err != nil {
		return 0, "", err
	}
	c.cache.Add(key, cachedRate{rate: rate, rateUnit: rateUnit})
	return rate, rateUnit, nil
}

func (c *CachedModel) Len() int {
	return c.cache.Len()
}
