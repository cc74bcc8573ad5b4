package components

import (
	"cridaa-booking/internal/monitoring"
	"cridaa-booking/internal/pkg/clock"
	"cridaa-booking/internal/usecase"
	"cridaa-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		monitoring.NewMonitor,
		usecase.NewBookingUseCase,
		usecase.NewAuthUseCase,
		usecase.NewTokenValidator,
		queries.NewSlotQueries,
	),
)
