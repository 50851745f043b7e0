package dashboard

import (
	"math/rand/v2"
	"strings"
	"time"
)

type ParticleKind string

const (
	ParticleRain  ParticleKind = "rain"
	ParticleSnow  ParticleKind = "snow"
	ParticleStorm ParticleKind = "storm"
)

// Particle is one animated background element. SizePx is only set for snow.
type Particle struct {
	Kind        ParticleKind
	LeftPercent float64
	Delay       time.Duration
	Duration    time.Duration
	SizePx      float64
}

type particleParam struct {
	count                  int
	maxDelay               float64
	minDuration, durSpread float64
	minSize, sizeSpread    float64
}

var particleParams = map[ParticleKind]particleParam{
	ParticleRain:  {count: 60, maxDelay: 5, minDuration: 0.5, durSpread: 0.5},
	ParticleSnow:  {count: 40, maxDelay: 10, minDuration: 3, durSpread: 7, minSize: 3, sizeSpread: 5},
	ParticleStorm: {count: 80, maxDelay: 2, minDuration: 0.3, durSpread: 0.3},
}

// ParticleKindFor maps a condition label (weather[0].main) to its particle kind.
func ParticleKindFor(condition string) (ParticleKind, bool) {
	switch strings.ToLower(condition) {
	case "rain", "drizzle":
		return ParticleRain, true
	case "snow":
		return ParticleSnow, true
	case "thunderstorm":
		return ParticleStorm, true
	}
	return "", false
}

// GenerateParticles builds a fresh batch for kind. It only reads from rng.
func GenerateParticles(kind ParticleKind, rng *rand.Rand) []Particle {
	cfg, ok := particleParams[kind]
	if !ok {
		return nil
	}

	out := make([]Particle, cfg.count)
	for i := range out {
		p := Particle{
			Kind:        kind,
			LeftPercent: rng.Float64() * 100,
			Delay:       seconds(rng.Float64() * cfg.maxDelay),
			Duration:    seconds(cfg.minDuration + rng.Float64()*cfg.durSpread),
		}
		if cfg.sizeSpread > 0 {
			p.SizePx = cfg.minSize + rng.Float64()*cfg.sizeSpread
		}
		out[i] = p
	}
	return out
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
