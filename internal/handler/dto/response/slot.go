package response

import (
	"cridaa-booking/internal/usecase/queries"
)

type SlotListResponse struct {
	Slots []queries.SlotView `json:"slots"`
}

type BookSlotResponse struct {
	Message string            `json:"message"`
	Slot    *queries.SlotView `json:"slot"`
}

type CancelSlotResponse struct {
	Message string            `json:"message"`
	Slot    *queries.SlotView `json:"slot"`
}
