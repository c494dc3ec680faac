package camera

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Faultbox/wildsnap/internal/engine/camera"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
