package domain

// NotificationSlot — время суток ежедневного чек-ина.
type NotificationSlot string

const (
	SlotMorning NotificationSlot = "morning"
	SlotMidday  NotificationSlot = "midday"
	SlotEvening NotificationSlot = "evening"
)
