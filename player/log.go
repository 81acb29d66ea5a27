package player

import "go.uber.org/zap"

func zapPoint(x, y float64) zap.Field {
	return zap.Float64s("pos", []float64{x, y})
}
