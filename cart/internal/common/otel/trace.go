package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/arkandha/feastly/internal/common"
)

var Tracer = otel.Tracer(common.AppCartService)
